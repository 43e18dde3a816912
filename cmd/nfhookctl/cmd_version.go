package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags; left as a default here
// since this module ships no release pipeline.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("nfhookctl", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
