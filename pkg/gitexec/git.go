// Package gitexec is the version-control collaborator: a thin wrapper
// around the git binary used to clone, commit and push enrollment
// workflows. Every operation takes the working directory explicitly (git
// runs with -C), so the process working directory is never touched.
package gitexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Client runs git commands against a configured binary path.
type Client struct {
	gitPath string
}

// NewClient creates a git client using the given binary path.
func NewClient(gitPath string) *Client {
	return &Client{gitPath: gitPath}
}

// Clone clones url into dir.
func (c *Client) Clone(ctx context.Context, url, dir string) error {
	_, err := c.run(ctx, "", "clone", "--depth", "1", url, dir)
	return err
}

// CheckoutNewBranch creates and checks out a new branch in dir.
func (c *Client) CheckoutNewBranch(ctx context.Context, dir, branch string) error {
	_, err := c.run(ctx, dir, "checkout", "-b", branch)
	return err
}

// Add stages a path in dir.
func (c *Client) Add(ctx context.Context, dir, path string) error {
	_, err := c.run(ctx, dir, "add", path)
	return err
}

// Commit records a commit in dir with the given message.
func (c *Client) Commit(ctx context.Context, dir, message string) error {
	_, err := c.run(ctx, dir, "commit", "-m", message)
	return err
}

// Push pushes branch to remote from dir.
func (c *Client) Push(ctx context.Context, dir, remote, branch string) error {
	_, err := c.run(ctx, dir, "push", remote, "HEAD:"+branch)
	return err
}

// run executes git with the given arguments, prefixing -C when a working
// directory is set. On failure the error carries git's stderr verbatim.
func (c *Client) run(ctx context.Context, dir string, args ...string) (string, error) {
	full := args
	if dir != "" {
		full = append([]string{"-C", dir}, args...)
	}

	cmd := exec.CommandContext(ctx, c.gitPath, full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", args[0], msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}
