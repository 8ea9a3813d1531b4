package codescan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codescanctl/pkg/config"
)

func TestGetTokenFromEnvironment(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_env_token")

	am := NewAuthManager()
	token, err := am.GetToken(&config.Config{})
	require.NoError(t, err)
	assert.Equal(t, "ghp_env_token", token)
}

func TestGetTokenEnvironmentOverridesConfig(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_env_token")

	cfg := &config.Config{}
	cfg.GitHub.Token = "ghp_config_token"

	am := NewAuthManager()
	token, err := am.GetToken(cfg)
	require.NoError(t, err)
	assert.Equal(t, "ghp_env_token", token)
}

func TestGetTokenFromConfig(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	cfg := &config.Config{}
	cfg.GitHub.Token = "  ghp_config_token\n"

	am := NewAuthManager()
	token, err := am.GetToken(cfg)
	require.NoError(t, err)
	assert.Equal(t, "ghp_config_token", token)
}

func TestGetTokenMissing(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	// Test stdin is not a terminal, so no prompt fires
	am := NewAuthManager()
	_, err := am.GetToken(&config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no GitHub token found")
}

func TestAuthenticateEmptyToken(t *testing.T) {
	am := NewAuthManager()
	err := am.Authenticate("")
	require.Error(t, err)
}

func TestValidateTokenRequiresAuthenticate(t *testing.T) {
	am := NewAuthManager()
	_, err := am.ValidateToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
}

func TestValidatePermissions(t *testing.T) {
	am := NewAuthManager()

	assert.NoError(t, am.validatePermissions([]string{"repo", "security_events"}))
	assert.NoError(t, am.validatePermissions([]string{"repo"}))
	assert.Error(t, am.validatePermissions([]string{"read:org"}))
	assert.Error(t, am.validatePermissions(nil))
}
