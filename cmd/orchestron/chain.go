package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orchestron-dev/orchestron/internal/cli"
)

// chainCmd represents the chain command
var chainCmd = &cobra.Command{
	Use:   "chain <name>",
	Short: "Run a registered chain of nodes",
	Long: `Compiles the chain against the node registry, executes its steps in order,
and prints the per-step trace plus the aggregate result as JSON. Execution
is fail-fast: the first failing step halts the chain.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fw, err := cli.NewFramework(globalOptions(cmd))
		if err != nil {
			return err
		}

		overrides, _ := cmd.Flags().GetStringArray("set")
		return cli.RunChain(cmd.Context(), fw, os.Stdout, args[0], overrides)
	},
}

func init() {
	rootCmd.AddCommand(chainCmd)
	chainCmd.Flags().StringArrayP("set", "s", nil, "Override a step input as step.param=value (repeatable)")
}
