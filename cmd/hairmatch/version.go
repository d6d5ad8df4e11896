package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set by -ldflags at build time.
var (
	Version   = "dev"
	CommitSHA = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hairmatch %s\n", Version)
		fmt.Printf("  Commit: %s\n", CommitSHA)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
