package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orchestron-dev/orchestron/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <node>",
	Short: "Run a single node with the given parameters",
	Long: `Validates the parameters against the node's declared schema, executes the
node, and prints the structured result as JSON. Exits non-zero when the
run fails, so shell pipelines can branch on the outcome.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fw, err := cli.NewFramework(globalOptions(cmd))
		if err != nil {
			return err
		}

		pairs, _ := cmd.Flags().GetStringArray("param")
		return cli.RunNode(cmd.Context(), fw, os.Stdout, args[0], pairs)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringArrayP("param", "p", nil, "Node parameter as key=value (repeatable; values may be JSON)")
}
