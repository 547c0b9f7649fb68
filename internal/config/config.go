package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the run configuration for clip-tidy.
//
// Categories is the authoritative legacy-token to canonical-token table. It
// is deliberately an explicit enumerated map: tokens not listed here are
// treated as unrecognized and reported, never inferred.
type Config struct {
	Categories       map[string]string `json:"categories"`
	IndexWidth       int               `json:"index_width"`
	CSVClipColumn    string            `json:"csv_clip_column"`
	LogRetentionDays int               `json:"log_retention_days"`
	EnableLogging    bool              `json:"enable_logging"`
	EnableFFprobe    bool              `json:"enable_ffprobe"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Categories: map[string]string{
			"3points":   "3pt",
			"3pts":      "3pt",
			"3pt":       "3pt",
			"freethrow": "freethrow",
		},
		IndexWidth:       3,
		CSVClipColumn:    "Clip Name",
		LogRetentionDays: 30,
		EnableLogging:    true,
		EnableFFprobe:    false,
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".clip-tidy", "config.json"), nil
}

// Load reads the configuration from disk, falling back to defaults for a
// missing file or missing fields.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Fill in any missing fields with defaults
	defaults := DefaultConfig()
	if len(cfg.Categories) == 0 {
		cfg.Categories = defaults.Categories
	}
	if cfg.IndexWidth == 0 {
		cfg.IndexWidth = defaults.IndexWidth
	}
	if cfg.CSVClipColumn == "" {
		cfg.CSVClipColumn = defaults.CSVClipColumn
	}
	if cfg.LogRetentionDays == 0 {
		cfg.LogRetentionDays = defaults.LogRetentionDays
	}

	return &cfg, nil
}

// Save writes the configuration to disk, creating the config directory if
// needed.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
