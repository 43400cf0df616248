// Package config handles reading and writing .parley/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/parley-dev/parley/internal/api"
)

// EnvBaseURLVar overrides the configured API base URL when set.
const EnvBaseURLVar = "PARLEY_API_URL"

// Config is the top-level structure for .parley/config.yaml.
type Config struct {
	Version int         `yaml:"version"`
	API     APIConfig   `yaml:"api"`
	Retry   RetryConfig `yaml:"retry"`

	// CustomerInfo is forwarded untouched with every message request.
	// No schema is enforced; the API treats it as opaque metadata.
	CustomerInfo map[string]any `yaml:"customer_info,omitempty"`
}

// APIConfig holds the remote endpoint settings.
type APIConfig struct {
	BaseURL      string `yaml:"base_url"`
	ProbeTimeout int    `yaml:"probe_timeout"` // seconds
	SendTimeout  int    `yaml:"send_timeout"`  // seconds
}

// RetryConfig controls the bounded retry loop for API calls.
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
	DelayMs     int `yaml:"delay_ms"`
}

const configDir = ".parley"
const configFile = "config.yaml"

// ReadConfig reads .parley/config.yaml from the given directory.
// dir is the working root (not .parley/ itself).
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to .parley/config.yaml in the given directory.
// Creates the .parley/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults. The base
// URL stays empty; it is supplied interactively or via environment.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APIConfig{
			ProbeTimeout: int(api.DefaultProbeTimeout / time.Second),
			SendTimeout:  int(api.DefaultSendTimeout / time.Second),
		},
		Retry: RetryConfig{
			MaxAttempts: api.DefaultMaxAttempts,
			DelayMs:     int(api.DefaultRetryDelay / time.Millisecond),
		},
	}
}

// EnvBaseURL returns the PARLEY_API_URL override, loading a .env file from
// the current directory first if one exists. Returns "" when unset.
func EnvBaseURL() string {
	_ = godotenv.Load(".env")
	return os.Getenv(EnvBaseURLVar)
}

// ClientSettings converts the config into api.Client settings for the given
// base URL. Zero config values defer to the client's own defaults.
func (c *Config) ClientSettings(baseURL string) api.Settings {
	return api.Settings{
		BaseURL:      baseURL,
		ProbeTimeout: time.Duration(c.API.ProbeTimeout) * time.Second,
		SendTimeout:  time.Duration(c.API.SendTimeout) * time.Second,
		MaxAttempts:  c.Retry.MaxAttempts,
		RetryDelay:   time.Duration(c.Retry.DelayMs) * time.Millisecond,
	}
}

// BaseURL resolves the effective endpoint: the environment override wins
// over the configured value.
func (c *Config) BaseURL() string {
	if env := EnvBaseURL(); env != "" {
		return env
	}
	return c.API.BaseURL
}
