package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	orchestron "github.com/orchestron-dev/orchestron"
	httpAdapter "github.com/orchestron-dev/orchestron/internal/adapters/http"
	"github.com/orchestron-dev/orchestron/internal/cli"
	"github.com/orchestron-dev/orchestron/internal/config"
	"github.com/orchestron-dev/orchestron/internal/logging"
	"github.com/orchestron-dev/orchestron/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Starts the framework in server mode, exposing nodes and chains over a JSON API with Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := globalOptions(cmd)
		port, _ := cmd.Flags().GetString("port")

		// Server mode always logs and always scrapes.
		reg := prometheus.NewRegistry()
		metrics := observability.NewMetrics(reg)
		logger := logging.New(logLevel(opts.Debug))

		provider, err := config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
		chains := config.DefaultChains()
		loaded, err := config.LoadChains(opts.ChainsPath)
		if err != nil {
			return err
		}
		for name, spec := range loaded {
			chains[name] = spec
		}

		fw, err := orchestron.New(
			orchestron.WithNodes(cli.BuiltinNodes()...),
			orchestron.WithConfigProvider(provider),
			orchestron.WithChains(chains),
			orchestron.WithLogger(logger),
			orchestron.WithMetrics(metrics),
		)
		if err != nil {
			return fmt.Errorf("error initializing framework: %w", err)
		}

		handler := httpAdapter.NewHandler(fw, httpAdapter.WithGatherer(reg))

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Orchestron Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			fmt.Println("Orchestron Server stopped gracefully")
			return nil
		}
	},
}

func logLevel(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
