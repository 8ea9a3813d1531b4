package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"codescanctl/pkg/codescan"
)

var (
	enableForce       bool
	enableSideBranch  string
	enableInteractive bool
)

var scanEnableCmd = &cobra.Command{
	Use:   "enable [owner/repo ...]",
	Short: "Enroll repositories into scheduled CodeQL scanning",
	Long: `Enroll repositories into scheduled code scanning by generating and
committing a CodeQL workflow file.

For each repository the language inventory is mapped to the CodeQL language
matrix, a weekly schedule with a per-repository randomized firing time is
generated, and the rendered workflow is committed and pushed to the default
branch. Repositories with no CodeQL-supported language are skipped.

Examples:
  codescanctl scan enable myorg/api myorg/frontend
  codescanctl scan enable myorg/api --force
  codescanctl scan enable myorg/api --branch add-codeql
  codescanctl scan enable --interactive`,
	RunE: runScanEnable,
}

func init() {
	scanEnableCmd.Flags().BoolVar(&enableForce, "force", false, "Overwrite an existing workflow file")
	scanEnableCmd.Flags().StringVar(&enableSideBranch, "branch", "", "Push to this side branch and open a pull request instead of pushing to the default branch")
	scanEnableCmd.Flags().BoolVar(&enableInteractive, "interactive", false, "Pick repositories from the configured organization")
	scanCmd.AddCommand(scanEnableCmd)
}

func runScanEnable(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	sc, err := setupScan(ctx)
	if err != nil {
		return err
	}

	repos, err := sc.resolveRepos(ctx, args, enableInteractive)
	if err != nil {
		return err
	}

	result, err := sc.batch.Enable(ctx, repos, codescan.EnableOptions{
		Force:      enableForce,
		SideBranch: enableSideBranch,
	})
	if err != nil {
		return err
	}

	printSummary(result)
	if result.HasFailures() {
		return fmt.Errorf("enrollment failed for %d repositories", len(result.Failed))
	}
	return nil
}
