package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"codescanctl/pkg/codescan"
)

var (
	analysesRef         string
	analysesDelete      bool
	analysesInteractive bool
)

var scanAnalysesCmd = &cobra.Command{
	Use:   "analyses [owner/repo ...]",
	Short: "List or bulk-delete code-scanning analyses",
	Long: `List the historical code-scanning analyses of each repository, or with
--delete remove every deletable analysis.

Deletion follows the server's retention chains: removing one analysis can
make its predecessor deletable, and the cascade keeps following those
pointers until none remains. Each deleted id is printed as the deletion
completes. With --ref, only analyses of that ref are listed or deleted.

Examples:
  codescanctl scan analyses myorg/api
  codescanctl scan analyses myorg/api --ref develop
  codescanctl scan analyses myorg/api --delete
  codescanctl scan analyses myorg/api --delete --ref develop`,
	RunE: runScanAnalyses,
}

func init() {
	scanAnalysesCmd.Flags().StringVar(&analysesRef, "ref", "", "Only list or delete analyses of this ref")
	scanAnalysesCmd.Flags().BoolVar(&analysesDelete, "delete", false, "Delete every deletable analysis instead of listing")
	scanAnalysesCmd.Flags().BoolVar(&analysesInteractive, "interactive", false, "Pick repositories from the configured organization")
	scanCmd.AddCommand(scanAnalysesCmd)
}

func runScanAnalyses(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	sc, err := setupScan(ctx)
	if err != nil {
		return err
	}

	repos, err := sc.resolveRepos(ctx, args, analysesInteractive)
	if err != nil {
		return err
	}

	result, err := sc.batch.ListAnalyses(ctx, repos, codescan.AnalysesOptions{
		Ref:    analysesRef,
		Delete: analysesDelete,
	})
	if err != nil {
		return err
	}

	if result.HasFailures() {
		printSummary(result)
		return fmt.Errorf("operation failed for %d repositories", len(result.Failed))
	}
	return nil
}
