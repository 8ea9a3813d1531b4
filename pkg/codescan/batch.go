package codescan

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// DefaultWorkflowPath is the repository-relative path the enrollment
// workflow is written to.
const DefaultWorkflowPath = ".github/workflows/codeql-analysis.yml"

// EnableOptions controls the enrollment driver.
type EnableOptions struct {
	// Force overwrites a pre-existing workflow file.
	Force bool
	// SideBranch, when set, pushes the workflow to this branch and opens a
	// pull request instead of pushing to the default branch.
	SideBranch string
}

// AnalysesOptions controls the analyses driver.
type AnalysesOptions struct {
	// Ref scopes listing and deletion to one ref.
	Ref string
	// Delete runs the deletion cascade instead of listing.
	Delete bool
}

// Batch applies one code-scanning operation to a list of repositories,
// strictly sequentially and in input order, isolating failures per
// repository. Fatal conditions (malformed input, metadata query failures,
// decode failures) abort the whole run.
type Batch struct {
	remote       RemoteClient
	git          GitClient
	pr           ChangeRequester
	out          io.Writer
	workflowPath string
	rng          *rand.Rand
}

// NewBatch creates a batch driver. The collaborators and output writer are
// explicit; nothing is resolved from ambient process state.
func NewBatch(remote RemoteClient, git GitClient, pr ChangeRequester, out io.Writer) *Batch {
	return &Batch{
		remote:       remote,
		git:          git,
		pr:           pr,
		out:          out,
		workflowPath: DefaultWorkflowPath,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetWorkflowPath overrides the repository-relative workflow path.
func (b *Batch) SetWorkflowPath(path string) {
	if path != "" {
		b.workflowPath = path
	}
}

// Enable enrolls each repository into scheduled scanning. Repositories with
// no CodeQL-supported language, or with an existing workflow and no force
// flag, are skipped and reported; enrollment failures are recorded and the
// batch continues.
func (b *Batch) Enable(ctx context.Context, repos []*Repo, opts EnableOptions) (*BatchResult, error) {
	result := NewBatchResult()

	for _, repo := range repos {
		reason, err := b.enableRepo(ctx, repo, opts)
		if err != nil {
			if IsFatal(err) {
				return result, err
			}
			result.Failed[repo.FullName()] = err
			fmt.Fprintf(b.out, "⚠️  %s: %v\n", repo.FullName(), err)
			continue
		}
		if reason != "" {
			result.Skipped[repo.FullName()] = reason
			fmt.Fprintf(b.out, "- %s: skipped: %s\n", repo.FullName(), reason)
			continue
		}
		result.Succeeded = append(result.Succeeded, repo.FullName())
		fmt.Fprintf(b.out, "✓ %s: code scanning enabled\n", repo.FullName())
	}

	return result, nil
}

// enableRepo runs the full enroll-commit-push sequence for one repository.
// A non-empty reason means the repository was deliberately skipped.
func (b *Batch) enableRepo(ctx context.Context, repo *Repo, opts EnableOptions) (reason string, err error) {
	langs, err := repo.Languages(ctx)
	if err != nil {
		return "", err
	}

	matrix := MatrixLanguages(langs)
	if len(matrix) == 0 {
		return "no CodeQL-supported languages", nil
	}

	branch, err := repo.DefaultBranch(ctx)
	if err != nil {
		return "", err
	}

	content := NewWorkflowConfig(branch, matrix, b.rng).Render()

	// The checkout directory is exclusively owned by this repository's
	// enrollment and removed on completion or failure.
	dir, err := os.MkdirTemp("", "codescanctl-*")
	if err != nil {
		return "", fmt.Errorf("failed to create checkout directory: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := b.git.Clone(ctx, "https://github.com/"+repo.FullName()+".git", dir); err != nil {
		return "", WrapError(ErrorTypeCheckout, err, repo.FullName())
	}

	workflowFile := filepath.Join(dir, filepath.FromSlash(b.workflowPath))
	if _, err := os.Stat(workflowFile); err == nil && !opts.Force {
		return "workflow already exists (use --force to overwrite)", nil
	}

	pushBranch := branch
	if opts.SideBranch != "" {
		pushBranch = opts.SideBranch
		if err := b.git.CheckoutNewBranch(ctx, dir, pushBranch); err != nil {
			return "", WrapError(ErrorTypeCheckout, err, repo.FullName())
		}
	}

	if err := os.MkdirAll(filepath.Dir(workflowFile), 0755); err != nil {
		return "", fmt.Errorf("failed to create workflow directory: %w", err)
	}
	if err := os.WriteFile(workflowFile, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write workflow file: %w", err)
	}

	if err := b.git.Add(ctx, dir, b.workflowPath); err != nil {
		return "", WrapError(ErrorTypeCheckout, err, repo.FullName())
	}
	if err := b.git.Commit(ctx, dir, "Add CodeQL code scanning workflow"); err != nil {
		return "", WrapError(ErrorTypeCheckout, err, repo.FullName())
	}
	if err := b.git.Push(ctx, dir, "origin", pushBranch); err != nil {
		return "", WrapError(ErrorTypeCheckout, err, repo.FullName())
	}

	if opts.SideBranch != "" {
		err := b.pr.CreatePullRequest(ctx, repo.Owner, repo.Name, pushBranch, branch,
			"Add CodeQL code scanning workflow",
			"Enables scheduled CodeQL analysis for this repository.")
		if err != nil {
			return "", WrapError(ErrorTypeCheckout, err, repo.FullName())
		}
	}

	return "", nil
}

// ListAlerts prints every open alert of every repository, one line per
// alert, in input order. A listing failure for one repository is recorded
// and the batch continues; a decode failure aborts the run.
func (b *Batch) ListAlerts(ctx context.Context, repos []*Repo) (*BatchResult, error) {
	result := NewBatchResult()

	for _, repo := range repos {
		alerts, err := repo.Alerts(ctx)
		if err != nil {
			if IsFatal(err) {
				return result, err
			}
			result.Failed[repo.FullName()] = err
			fmt.Fprintf(b.out, "⚠️  %s: %v\n", repo.FullName(), err)
			continue
		}

		for _, alert := range alerts {
			fmt.Fprintln(b.out, FormatAlertLine(repo.FullName(), alert))
		}
		result.Succeeded = append(result.Succeeded, repo.FullName())
	}

	return result, nil
}

// ListAnalyses prints or deletes analyses per repository, in input order.
// In delete mode each removed id is printed as the deletion completes; a
// failed deletion aborts that repository's cascade and the batch moves on.
func (b *Batch) ListAnalyses(ctx context.Context, repos []*Repo, opts AnalysesOptions) (*BatchResult, error) {
	result := NewBatchResult()

	for _, repo := range repos {
		if opts.Delete {
			_, err := RunCascade(ctx, b.remote, repo, opts.Ref, func(id int64) {
				fmt.Fprintf(b.out, "%d\n", id)
			})
			if err != nil {
				if IsFatal(err) {
					return result, err
				}
				result.Failed[repo.FullName()] = err
				fmt.Fprintf(b.out, "⚠️  %s: %v\n", repo.FullName(), err)
				continue
			}
			result.Succeeded = append(result.Succeeded, repo.FullName())
			continue
		}

		analyses, err := repo.Analyses(ctx, opts.Ref)
		if err != nil {
			if IsFatal(err) {
				return result, err
			}
			result.Failed[repo.FullName()] = err
			fmt.Fprintf(b.out, "⚠️  %s: %v\n", repo.FullName(), err)
			continue
		}

		for _, analysis := range analyses {
			fmt.Fprintln(b.out, FormatAnalysisLine(repo.FullName(), analysis))
		}
		result.Succeeded = append(result.Succeeded, repo.FullName())
	}

	return result, nil
}
