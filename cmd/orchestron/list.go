package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orchestron-dev/orchestron/internal/cli"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered nodes and their parameter schemas",
	RunE: func(cmd *cobra.Command, args []string) error {
		fw, err := cli.NewFramework(globalOptions(cmd))
		if err != nil {
			return err
		}

		chains, _ := cmd.Flags().GetBool("chains-only")
		if chains {
			return cli.ListChains(fw, os.Stdout)
		}
		return cli.ListNodes(fw, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("chains-only", false, "List chain definitions instead of nodes")
}
