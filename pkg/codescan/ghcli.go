package codescan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// CommandRunner defines the interface for running collaborator executables.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner implements CommandRunner with os/exec. Stderr is captured and
// surfaced verbatim in the returned error so the collaborator's own
// diagnostics reach the operator unreinterpreted.
type ExecRunner struct{}

// Run executes the command and returns its stdout.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%s: %s", name, msg)
	}
	return stdout.Bytes(), nil
}

// CLIClient implements RemoteClient and ChangeRequester against the gh
// executable. The binary path is explicit configuration supplied at
// construction; there is no ambient default.
type CLIClient struct {
	ghPath string
	runner CommandRunner
}

// NewCLIClient creates a gh-backed client using the given binary path.
func NewCLIClient(ghPath string) *CLIClient {
	return &CLIClient{ghPath: ghPath, runner: ExecRunner{}}
}

// NewCLIClientWithRunner creates a gh-backed client with a custom runner
// (for testing).
func NewCLIClientWithRunner(ghPath string, runner CommandRunner) *CLIClient {
	return &CLIClient{ghPath: ghPath, runner: runner}
}

// RepoMetadata fetches repository metadata.
func (c *CLIClient) RepoMetadata(ctx context.Context, owner, name string) (*RepoMetadata, error) {
	out, err := c.runner.Run(ctx, c.ghPath, "api", fmt.Sprintf("repos/%s/%s", owner, name))
	if err != nil {
		return nil, err
	}

	var meta RepoMetadata
	if err := json.Unmarshal(out, &meta); err != nil {
		return nil, NewScanError(ErrorTypeDecode, fmt.Sprintf("repository metadata: %v", err), err)
	}
	return &meta, nil
}

// RepoLanguages fetches the repository's language inventory.
func (c *CLIClient) RepoLanguages(ctx context.Context, owner, name string) (map[string]int64, error) {
	out, err := c.runner.Run(ctx, c.ghPath, "api", fmt.Sprintf("repos/%s/%s/languages", owner, name))
	if err != nil {
		return nil, err
	}

	langs := make(map[string]int64)
	if err := json.Unmarshal(out, &langs); err != nil {
		return nil, NewScanError(ErrorTypeDecode, fmt.Sprintf("language inventory: %v", err), err)
	}
	return langs, nil
}

// ListAnalyses returns the raw paginated analysis listing. gh emits one
// JSON array per page with no delimiter between pages, which is exactly the
// multi-document stream the decoder consumes. A 404 from a repository that
// has never been scanned is treated as an empty listing.
func (c *CLIClient) ListAnalyses(ctx context.Context, owner, name, ref string) ([]byte, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/code-scanning/analyses?per_page=100", owner, name)
	if ref != "" {
		endpoint += "&ref=" + qualifyRef(ref)
	}

	out, err := c.runner.Run(ctx, c.ghPath, "api", "--paginate", endpoint)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// DeleteAnalysis deletes one analysis and reports the next deletable
// analysis in the same chain, if the server revealed one.
func (c *CLIClient) DeleteAnalysis(ctx context.Context, owner, name string, id int64) (*DeleteResponse, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/code-scanning/analyses/%d?confirm_delete", owner, name, id)
	out, err := c.runner.Run(ctx, c.ghPath, "api", "-X", "DELETE", endpoint)
	if err != nil {
		return nil, err
	}

	var body struct {
		NextAnalysisURL string `json:"next_analysis_url"`
	}
	if len(bytes.TrimSpace(out)) > 0 {
		if err := json.Unmarshal(out, &body); err != nil {
			return nil, NewScanError(ErrorTypeDecode, fmt.Sprintf("delete response: %v", err), err)
		}
	}

	resp := &DeleteResponse{}
	if body.NextAnalysisURL != "" {
		nextID, err := analysisIDFromURL(body.NextAnalysisURL)
		if err != nil {
			return nil, NewScanError(ErrorTypeDecode, err.Error(), err)
		}
		resp.NextAnalysisID = nextID
	}
	return resp, nil
}

// ListAlerts returns the raw paginated listing of open alerts.
func (c *CLIClient) ListAlerts(ctx context.Context, owner, name string) ([]byte, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/code-scanning/alerts?state=open&per_page=100", owner, name)
	out, err := c.runner.Run(ctx, c.ghPath, "api", "--paginate", endpoint)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// CreatePullRequest opens a pull request for a pushed side branch.
func (c *CLIClient) CreatePullRequest(ctx context.Context, owner, name, head, base, title, body string) error {
	_, err := c.runner.Run(ctx, c.ghPath, "pr", "create",
		"--repo", owner+"/"+name,
		"--head", head,
		"--base", base,
		"--title", title,
		"--body", body,
	)
	return err
}

// analysisIDFromURL extracts the trailing analysis id from a
// next_analysis_url value.
func analysisIDFromURL(url string) (int64, error) {
	idx := strings.LastIndex(url, "/")
	if idx < 0 || idx == len(url)-1 {
		return 0, fmt.Errorf("next analysis URL %q has no id segment", url)
	}
	id, err := strconv.ParseInt(url[idx+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("next analysis URL %q has no id segment", url)
	}
	return id, nil
}

// qualifyRef expands a short branch name to a fully-qualified ref for the
// listing query; already-qualified refs pass through.
func qualifyRef(ref string) string {
	if strings.HasPrefix(ref, "refs/") {
		return ref
	}
	return "refs/heads/" + ref
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "HTTP 404")
}
