package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the codescanctl configuration
type Config struct {
	GitHub GitHubConfig `yaml:"github"`
	Scan   ScanConfig   `yaml:"scan"`
}

// GitHubConfig represents GitHub-specific configuration
type GitHubConfig struct {
	Token        string `yaml:"token,omitempty"`
	Organization string `yaml:"organization,omitempty"`
}

// ScanConfig configures the scanning engine, including the collaborator
// executable paths. Paths are resolved once at load time; nothing reads
// them from ambient process state later.
type ScanConfig struct {
	GHPath       string `yaml:"gh_path,omitempty"`
	GitPath      string `yaml:"git_path,omitempty"`
	WorkflowPath string `yaml:"workflow_path,omitempty"`
}

// LoadConfig loads configuration from the default location
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadConfigFromPath(configPath)
}

// LoadConfigFromPath loads configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.ApplyDefaults()
		return cfg, nil // Missing file means defaults only
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig saves configuration to the default location
func (c *Config) SaveConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return c.SaveConfigToPath(configPath)
}

// SaveConfigToPath saves configuration to a specific path
func (c *Config) SaveConfigToPath(path string) error {
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".codescanctl", "config.yaml"), nil
}

// ApplyDefaults fills unset fields. Collaborator binaries default to a
// PATH lookup; when the lookup fails the bare name is kept so the eventual
// exec error names the missing binary.
func (c *Config) ApplyDefaults() {
	if c.Scan.GHPath == "" {
		c.Scan.GHPath = lookPathOr("gh")
	}
	if c.Scan.GitPath == "" {
		c.Scan.GitPath = lookPathOr("git")
	}
	if c.Scan.WorkflowPath == "" {
		c.Scan.WorkflowPath = ".github/workflows/codeql-analysis.yml"
	}
}

func lookPathOr(name string) string {
	if path, err := exec.LookPath(name); err == nil {
		return path
	}
	return name
}
