package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/orchestron-dev/orchestron/internal/cli"
	"github.com/orchestron-dev/orchestron/internal/logging"
	"github.com/orchestron-dev/orchestron/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the framework as an MCP server over stdio. Each registered node is
exposed as a tool with its parameter schema, plus a run_chain tool for the
registered chains. Logs go to stderr so JSON-RPC on stdout stays clean.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := globalOptions(cmd)

		logger := logging.New(logLevel(opts.Debug))
		slog.SetDefault(logger)
		log.SetOutput(os.Stderr)

		fw, err := cli.NewFramework(opts)
		if err != nil {
			return err
		}

		srv := mcp.NewServer(fw)
		slog.Info("Starting Orchestron MCP Server (Stdio)...")
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
