package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var alertsInteractive bool

var scanAlertsCmd = &cobra.Command{
	Use:   "alerts [owner/repo ...]",
	Short: "List open code-scanning alerts",
	Long: `List the open code-scanning alerts of each repository, one line per
alert: repository, alert number, created timestamp, state, rule id, and
path:line.

Examples:
  codescanctl scan alerts myorg/api
  codescanctl scan alerts myorg/api myorg/frontend
  codescanctl scan alerts --interactive`,
	RunE: runScanAlerts,
}

func init() {
	scanAlertsCmd.Flags().BoolVar(&alertsInteractive, "interactive", false, "Pick repositories from the configured organization")
	scanCmd.AddCommand(scanAlertsCmd)
}

func runScanAlerts(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	sc, err := setupScan(ctx)
	if err != nil {
		return err
	}

	repos, err := sc.resolveRepos(ctx, args, alertsInteractive)
	if err != nil {
		return err
	}

	result, err := sc.batch.ListAlerts(ctx, repos)
	if err != nil {
		return err
	}

	if result.HasFailures() {
		printSummary(result)
		return fmt.Errorf("listing failed for %d repositories", len(result.Failed))
	}
	return nil
}
