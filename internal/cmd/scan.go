package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codescanctl/pkg/codescan"
	"codescanctl/pkg/config"
	"codescanctl/pkg/fuzzy"
	"codescanctl/pkg/gitexec"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Code scanning management commands",
	Long: `Commands for managing the code scanning feature across repositories.

Available commands:
  enable   - Enroll repositories into scheduled CodeQL scanning
  alerts   - List open code-scanning alerts
  analyses - List or bulk-delete historical analyses

Repositories are given as owner/name arguments and processed one at a
time in the order given. With --interactive and no arguments, repositories
are picked from the configured organization.`,
}

func init() {
	// Subcommands are added in their respective files
}

// scanContext bundles everything a scan subcommand needs after the common
// bootstrap: loaded config, validated auth, and the batch driver wired to
// the configured collaborator binaries.
type scanContext struct {
	cfg    *config.Config
	auth   *codescan.AuthManager
	remote *codescan.CLIClient
	batch  *codescan.Batch
}

// setupScan loads configuration, authenticates, and builds the batch
// driver. Failing here means no repository work has started yet.
func setupScan(ctx context.Context) (*scanContext, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load codescanctl config: %w", err)
	}

	authManager := codescan.NewAuthManager()
	tokenInfo, err := authManager.AuthenticateFromConfig(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n", err)
		return nil, err
	}
	fmt.Printf("✓ Authenticated as %s\n", tokenInfo.User)

	remote := codescan.NewCLIClient(cfg.Scan.GHPath)
	git := gitexec.NewClient(cfg.Scan.GitPath)
	batch := codescan.NewBatch(remote, git, remote, os.Stdout)
	batch.SetWorkflowPath(cfg.Scan.WorkflowPath)

	return &scanContext{cfg: cfg, auth: authManager, remote: remote, batch: batch}, nil
}

// resolveRepos turns positional arguments into repository handles, or runs
// the interactive picker over the configured organization when no
// arguments were given and interactive mode was requested.
func (sc *scanContext) resolveRepos(ctx context.Context, args []string, interactive bool) ([]*codescan.Repo, error) {
	specs := args

	if len(specs) == 0 && interactive {
		org := sc.cfg.GitHub.Organization
		if org == "" {
			return nil, fmt.Errorf("interactive selection requires github.organization in config")
		}

		candidates, err := sc.auth.ListOrgRepos(ctx, org)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("organization %s has no repositories", org)
		}

		picker := fuzzy.NewPicker("Select repositories:", candidates)
		specs, err = picker.PickMany()
		if err != nil {
			return nil, err
		}
	}

	if len(specs) == 0 {
		return nil, fmt.Errorf("no repositories given: pass owner/name arguments or use --interactive")
	}

	return codescan.ParseRepos(specs, sc.remote)
}

// printSummary reports the batch outcome in a stable order.
func printSummary(result *codescan.BatchResult) {
	fmt.Printf("\nProcessed: %d succeeded, %d failed, %d skipped\n",
		len(result.Succeeded), len(result.Failed), len(result.Skipped))
	for repo, reason := range result.Skipped {
		fmt.Printf("  - %s: %s\n", repo, reason)
	}
	for repo, err := range result.Failed {
		fmt.Printf("  ⚠️  %s: %v\n", repo, err)
	}
}
