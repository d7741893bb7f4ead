// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for JohnAssist.
//
// Configuration sources, in order of precedence:
//   - Environment variables (ANTHROPIC_API_KEY, JOHNASSIST_MODEL)
//   - ~/.johnassist/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Bounds and defaults for model parameters.
const (
	DefaultMaxTokens   = 1000
	MinMaxTokens       = 100
	MaxMaxTokens       = 4096
	DefaultTemperature = 0.7
)

// Config holds the runtime configuration.
type Config struct {
	// APIKey is the Anthropic API key.
	APIKey string `toml:"api_key"`

	// Model overrides the default completion model when set.
	Model string `toml:"model"`

	// MaxTokens bounds generated response length. Higher values allow
	// longer answers but increase cost.
	MaxTokens int `toml:"max_tokens"`

	// Temperature controls response variability in [0.0, 1.0]:
	// 0 is focused and consistent, 1 is maximally varied.
	Temperature float64 `toml:"temperature"`

	// ExportDir is where transcript exports are written. Empty means
	// the current working directory.
	ExportDir string `toml:"export_dir"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// ConfigDir returns the johnassist configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".johnassist"), nil
}

// ConfigPath returns the default config file path, or a relative
// fallback when the home directory cannot be resolved.
func ConfigPath() string {
	dir, err := ConfigDir()
	if err != nil {
		return filepath.Join(".johnassist", "config.toml")
	}
	return filepath.Join(dir, "config.toml")
}

// Load reads configuration from disk, applies environment overrides,
// and validates the result. A missing config file is not an error; the
// defaults are used.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	dir, err := ConfigDir()
	if err == nil {
		path := filepath.Join(dir, "config.toml")
		if _, statErr := os.Stat(path); statErr == nil {
			if _, decErr := toml.DecodeFile(path, cfg); decErr != nil {
				return nil, fmt.Errorf("parse %s: %w", path, decErr)
			}
		}
	}

	cfg.applyEnv()
	cfg.Validate()
	return cfg, nil
}

// LoadFile reads configuration from an explicit path, then applies
// environment overrides and validation.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyEnv()
	cfg.Validate()
	return cfg, nil
}

// applyEnv overlays environment variables onto the config.
func (c *Config) applyEnv() {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		c.APIKey = key
	}
	if m := os.Getenv("JOHNASSIST_MODEL"); m != "" {
		c.Model = m
	}
}

// Validate clamps out-of-range values to their nearest valid bound
// rather than rejecting the config.
func (c *Config) Validate() {
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.MaxTokens < MinMaxTokens {
		c.MaxTokens = MinMaxTokens
	}
	if c.MaxTokens > MaxMaxTokens {
		c.MaxTokens = MaxMaxTokens
	}
	if c.Temperature < 0 {
		c.Temperature = 0
	}
	if c.Temperature > 1 {
		c.Temperature = 1
	}
}
