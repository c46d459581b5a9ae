// Package config loads the vedetta configuration file and the separate
// credentials file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"vedetta/internal/ports"
)

const (
	DefaultBaseURL          = "https://en.wikipedia.org"
	DefaultBatchSize        = 5
	DefaultDiscussionPrefix = "Talk:"
)

// Config is the top-level vedetta configuration.
type Config struct {
	// BaseURL of the wiki, without trailing slash.
	BaseURL string `yaml:"base_url"`

	// BatchSize is the maximum number of pages one run may open.
	BatchSize int `yaml:"batch_size"`

	// DiscussionPrefix identifies discussion pages for report folding,
	// colon included.
	DiscussionPrefix string `yaml:"discussion_prefix"`

	// DatabasePath of the history store. Empty means the XDG default.
	DatabasePath string `yaml:"database_path"`

	// SecretsPath of the credentials JSON file.
	SecretsPath string `yaml:"secrets_path"`

	// Headful shows the login browser window instead of running it
	// headless.
	Headful bool `yaml:"headful"`

	Log   LogConfig   `yaml:"log"`
	Label LabelConfig `yaml:"label"`
}

// LogConfig controls the rotating run log.
type LogConfig struct {
	// File path of the log. Empty logs to stderr only.
	File       string `yaml:"file"`
	Level      string `yaml:"level"` // debug | info | warn | error
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// LabelConfig controls the last-modified label rendering.
type LabelConfig struct {
	Format   string `yaml:"format"` // dmy | mdy | iso
	Relative bool   `yaml:"relative"`
	UTC      bool   `yaml:"utc"`
}

// DefaultPath returns the config file location, honoring VEDETTA_CONFIG
// and falling back to the XDG config directory.
func DefaultPath() string {
	if env := os.Getenv("VEDETTA_CONFIG"); env != "" {
		return env
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "vedetta", "config.yaml")
}

// Load reads a YAML configuration file. A missing file yields the
// defaults: vedetta works out of the box against the default wiki.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.DiscussionPrefix == "" {
		c.DiscussionPrefix = DefaultDiscussionPrefix
	}
	if c.SecretsPath == "" {
		c.SecretsPath = "secrets.json"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAgeDays <= 0 {
		c.Log.MaxAgeDays = 30
	}
	if c.Label.Format == "" {
		c.Label.Format = "dmy"
	}
}

// secretsFile mirrors the credentials JSON layout.
type secretsFile struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoadCredentials reads the credentials JSON file. Both fields are
// required; a missing one is reported by name.
func LoadCredentials(path string) (ports.Credentials, error) {
	var creds ports.Credentials

	data, err := os.ReadFile(path)
	if err != nil {
		return creds, fmt.Errorf("config: read credentials %s: %w", path, err)
	}

	var secrets secretsFile
	if err := json.Unmarshal(data, &secrets); err != nil {
		return creds, fmt.Errorf("config: parse credentials %s: %w", path, err)
	}
	if secrets.Username == "" {
		return creds, fmt.Errorf("config: credentials %s: username is required", path)
	}
	if secrets.Password == "" {
		return creds, fmt.Errorf("config: credentials %s: password is required", path)
	}

	creds.Username = secrets.Username
	creds.Password = secrets.Password
	return creds, nil
}
