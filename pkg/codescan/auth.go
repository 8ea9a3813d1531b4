package codescan

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
	"golang.org/x/term"

	"codescanctl/pkg/config"
)

// AuthManager resolves and validates the GitHub token before a batch run
// starts, so a bad credential fails fast instead of midway through the
// repository list.
type AuthManager struct {
	client *github.Client
	token  string
}

// NewAuthManager creates a new authentication manager.
func NewAuthManager() *AuthManager {
	return &AuthManager{}
}

// GetToken retrieves the GitHub token from the environment, the config
// file, or an interactive terminal prompt, in that order.
func (am *AuthManager) GetToken(cfg *config.Config) (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return strings.TrimSpace(token), nil
	}

	if cfg != nil && cfg.GitHub.Token != "" {
		return strings.TrimSpace(cfg.GitHub.Token), nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "GitHub token: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		if token := strings.TrimSpace(string(raw)); token != "" {
			return token, nil
		}
	}

	return "", fmt.Errorf("no GitHub token found: set GITHUB_TOKEN or configure token in ~/.codescanctl/config.yaml")
}

// Authenticate sets up the GitHub client with the provided token.
func (am *AuthManager) Authenticate(token string) error {
	if token == "" {
		return fmt.Errorf("GitHub token cannot be empty")
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	am.client = github.NewClient(tc)
	am.token = token
	return nil
}

// ValidateToken validates the token and checks that it carries the scopes
// code scanning needs.
func (am *AuthManager) ValidateToken(ctx context.Context) (*TokenInfo, error) {
	if am.client == nil {
		return nil, fmt.Errorf("not authenticated: call Authenticate() first")
	}

	user, resp, err := am.client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to validate GitHub token: %w", err)
	}

	scopes := []string{}
	if scopeHeader := resp.Header.Get("X-OAuth-Scopes"); scopeHeader != "" {
		scopes = strings.Split(strings.ReplaceAll(scopeHeader, " ", ""), ",")
	}

	info := &TokenInfo{
		User:   user.GetLogin(),
		Scopes: scopes,
	}

	if err := am.validatePermissions(info.Scopes); err != nil {
		return info, err
	}
	return info, nil
}

// validatePermissions checks for the scopes the scanning endpoints require.
func (am *AuthManager) validatePermissions(scopes []string) error {
	requiredScopes := []string{"repo", "security_events"}
	scopeMap := make(map[string]bool)
	for _, scope := range scopes {
		scopeMap[scope] = true
	}

	// A classic token with repo implies security_events for private repos,
	// but fine-grained listings report both, so require repo and accept
	// security_events when present.
	if !scopeMap["repo"] {
		return fmt.Errorf("GitHub token missing required permissions: repo. Please ensure your token has the following scopes: %s",
			strings.Join(requiredScopes, ", "))
	}
	return nil
}

// ListOrgRepos lists the repository full names of an organization, for
// interactive selection when no repositories were given on the command
// line.
func (am *AuthManager) ListOrgRepos(ctx context.Context, org string) ([]string, error) {
	if am.client == nil {
		return nil, fmt.Errorf("not authenticated: call Authenticate() first")
	}

	opts := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var names []string
	for {
		repos, resp, err := am.client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories for %s: %w", org, err)
		}
		for _, repo := range repos {
			names = append(names, repo.GetFullName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}

// TokenInfo contains information about the authenticated token.
type TokenInfo struct {
	User   string   `json:"user"`
	Scopes []string `json:"scopes"`
}

// AuthenticateFromConfig is a convenience method that handles the full
// authentication flow.
func (am *AuthManager) AuthenticateFromConfig(ctx context.Context, cfg *config.Config) (*TokenInfo, error) {
	token, err := am.GetToken(cfg)
	if err != nil {
		return nil, err
	}

	if err := am.Authenticate(token); err != nil {
		return nil, err
	}

	return am.ValidateToken(ctx)
}
