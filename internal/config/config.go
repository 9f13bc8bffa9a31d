// Package config loads quietharbor configuration from a YAML file with
// environment-variable overrides. Missing file means defaults; the
// OpenAI API key is never read from disk, only from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable parameters.
type Config struct {
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	BaseURL     string  `yaml:"base_url"`

	DatabasePath string `yaml:"database_path"`
	KeywordsPath string `yaml:"keywords_path"`
	AuditLogPath string `yaml:"audit_log_path"`

	ListenAddr  string `yaml:"listen_addr"`
	MetricsAddr string `yaml:"metrics_addr"`

	// APIKey comes from OPENAI_API_KEY only.
	APIKey string `yaml:"-"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:        "gpt-4",
		Temperature:  0.7,
		MaxTokens:    1000,
		DatabasePath: defaultPath("quietharbor.db"),
		AuditLogPath: defaultPath("safety.jsonl"),
		ListenAddr:   ":8380",
		MetricsAddr:  ":9380",
	}
}

func defaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".quietharbor", name)
}

// Load reads configuration from a YAML file and applies environment
// overrides. Empty path falls back to ~/.quietharbor/config.yaml.
// Missing file returns defaults. Invalid YAML returns an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			cfg.applyEnv()
			return cfg, nil
		}
		path = filepath.Join(home, ".quietharbor", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Start with defaults, YAML overwrites only specified fields.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides file values with environment variables.
// DEFAULT_MODEL, TEMPERATURE, and MAX_TOKENS are honored alongside the
// QUIETHARBOR_* names for compatibility with older deployments.
func (c *Config) applyEnv() {
	c.APIKey = os.Getenv("OPENAI_API_KEY")

	if v := firstEnv("QUIETHARBOR_MODEL", "DEFAULT_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = f
		}
	}
	if v := os.Getenv("MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTokens = n
		}
	}
	if v := firstEnv("QUIETHARBOR_DB", "DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("QUIETHARBOR_KEYWORDS"); v != "" {
		c.KeywordsPath = v
	}
	if v := os.Getenv("QUIETHARBOR_AUDIT_LOG"); v != "" {
		c.AuditLogPath = v
	}
	if v := os.Getenv("QUIETHARBOR_LISTEN"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("QUIETHARBOR_METRICS"); v != "" {
		c.MetricsAddr = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.BaseURL = v
	}
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
