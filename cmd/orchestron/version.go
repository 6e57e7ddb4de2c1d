package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	orchestron "github.com/orchestron-dev/orchestron"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of orchestron",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("orchestron version %s\n", strings.TrimSpace(orchestron.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
