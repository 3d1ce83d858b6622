package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultServerURL is used when neither the config file nor the
	// environment name a server
	DefaultServerURL = "http://127.0.0.1:8000"

	// ConfigFileName is the global config file inside the config directory
	ConfigFileName = "config.json"

	// LogFileName is the diagnostics log inside the config directory
	LogFileName = "taskflow.log"

	dirName = ".taskflow"
)

// Config represents the application configuration
type Config struct {
	// API server URL
	ServerURL string `json:"server_url" env:"TASKFLOW_API_BASE_URL"`

	// Email of the last successful login, for display only
	Email string `json:"email,omitempty"`

	// Debug mirrors diagnostic logging to stderr
	Debug bool `json:"debug,omitempty" env:"TASKFLOW_DEBUG"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		ServerURL: DefaultServerURL,
	}
}

// Load loads the configuration from the given file path
func Load(path string) (*Config, error) {
	// If config file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}

	return cfg, nil
}

// Save saves the configuration to the given file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// GetGlobalConfigDir returns the directory holding the config file, the
// session token and the log. TASKFLOW_CONFIG_DIR overrides ~/.taskflow.
func GetGlobalConfigDir() (string, error) {
	var overrides struct {
		Dir string `env:"TASKFLOW_CONFIG_DIR"`
	}
	if err := ParseEnv(&overrides); err != nil {
		return "", err
	}
	if overrides.Dir != "" {
		return overrides.Dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}
	return filepath.Join(homeDir, dirName), nil
}

// LoadDir loads the config file inside dir and applies environment
// overrides on top of it
func LoadDir(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, ConfigFileName))
	if err != nil {
		return nil, err
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveDir writes the config file inside dir
func (c *Config) SaveDir(dir string) error {
	return c.Save(filepath.Join(dir, ConfigFileName))
}
