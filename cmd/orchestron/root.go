package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orchestron-dev/orchestron/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "orchestron",
	Short: "Orchestron is a plugin-dispatch framework for action nodes",
	Long: `Orchestron runs self-describing action nodes: each node declares its
parameters and outputs, and the framework validates input, resolves
configuration and reports every outcome as structured JSON. Nodes can be
composed into declarative chains.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrRunFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "config.yaml", "Path to the node configuration file")
	rootCmd.PersistentFlags().String("chains", "chains.yaml", "Path to the chain definitions file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

// globalOptions reads the persistent flags shared by every command.
func globalOptions(cmd *cobra.Command) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	chainsPath, _ := cmd.Flags().GetString("chains")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{ConfigPath: configPath, ChainsPath: chainsPath, Debug: debug}
}
