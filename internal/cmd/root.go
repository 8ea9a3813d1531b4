package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codescanctl",
	Short: "A CLI tool for batch code-scanning operations across repositories",
	Long: `Codescanctl manages the code scanning feature across one or many GitHub
repositories. It can enroll repositories into scheduled CodeQL scanning,
list outstanding alerts, and list or bulk-delete historical analyses.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
