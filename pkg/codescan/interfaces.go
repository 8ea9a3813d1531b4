package codescan

import "context"

// RemoteClient defines the interface to the code-scanning API collaborator.
// The paginated listing calls return the collaborator's raw output: zero or
// more complete JSON arrays concatenated back to back, one per page.
type RemoteClient interface {
	// Repository metadata
	RepoMetadata(ctx context.Context, owner, name string) (*RepoMetadata, error)
	RepoLanguages(ctx context.Context, owner, name string) (map[string]int64, error)

	// Analysis operations
	ListAnalyses(ctx context.Context, owner, name, ref string) ([]byte, error)
	DeleteAnalysis(ctx context.Context, owner, name string, id int64) (*DeleteResponse, error)

	// Alert operations
	ListAlerts(ctx context.Context, owner, name string) ([]byte, error)
}

// GitClient defines the interface to the version-control collaborator. All
// operations take the working directory explicitly; the engine never changes
// the process working directory.
type GitClient interface {
	Clone(ctx context.Context, url, dir string) error
	CheckoutNewBranch(ctx context.Context, dir, branch string) error
	Add(ctx context.Context, dir, path string) error
	Commit(ctx context.Context, dir, message string) error
	Push(ctx context.Context, dir, remote, branch string) error
}

// ChangeRequester opens a pull request for side-branch enrollment.
type ChangeRequester interface {
	CreatePullRequest(ctx context.Context, owner, name, head, base, title, body string) error
}

// BatchResult reports the outcome of one batch operation across all
// repositories, in input order within each category.
type BatchResult struct {
	Succeeded []string
	Failed    map[string]error
	Skipped   map[string]string
}

// NewBatchResult creates an empty batch result.
func NewBatchResult() *BatchResult {
	return &BatchResult{
		Succeeded: make([]string, 0),
		Failed:    make(map[string]error),
		Skipped:   make(map[string]string),
	}
}

// HasFailures reports whether any repository failed.
func (r *BatchResult) HasFailures() bool {
	return len(r.Failed) > 0
}
