// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for emochat.
//
// Configuration lives in TOML at ~/.emochat/config.toml, with built-in
// defaults and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete emochat configuration.
type Config struct {
	// Server configuration
	Server ServerConfig `toml:"server"`

	// Storage configuration
	Storage StorageConfig `toml:"storage"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// ServerConfig contains chat service connection settings.
type ServerConfig struct {
	// BaseURL is the root URL of the chat service.
	BaseURL string `toml:"base_url"`
	// AuthMode selects the deployment's auth variant: "basic" or "jwt".
	AuthMode string `toml:"auth_mode"`
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
}

// StorageConfig contains local persistence settings.
type StorageConfig struct {
	// Path is the conversations file location (empty = default
	// ~/.emochat/conversations.json).
	Path string `toml:"path"`
}

// UIConfig contains user interface settings.
type UIConfig struct {
	// ShowSprite toggles the bot sprite panel.
	ShowSprite bool `toml:"show_sprite"`
	// RevealReplies toggles the progressive reply reveal.
	RevealReplies bool `toml:"reveal_replies"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with all default values set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:     "http://localhost:8000",
			AuthMode:    "basic",
			TimeoutSecs: 60,
		},
		Storage: StorageConfig{},
		UI: UIConfig{
			ShowSprite:    true,
			RevealReplies: true,
		},
	}
}

// =============================================================================
// FILE PATHS
// =============================================================================

// ConfigDir returns the emochat configuration directory (~/.emochat).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".emochat"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration, applying this precedence:
//  1. Built-in defaults
//  2. ~/.emochat/config.toml (if present)
//  3. Environment variable overrides
//
// A missing config file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if loadErr := loadTOML(cfg, path); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
			return nil, loadErr
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := loadTOML(cfg, path); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadTOML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to ~/.emochat/config.toml atomically.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the configuration to the given path atomically.
func SaveTo(cfg *Config, path string) error {
	var sb strings.Builder
	sb.WriteString("# emochat configuration\n\n")
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.BaseURL != "" {
		u, err := url.Parse(c.Server.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("server.base_url: invalid URL %q", c.Server.BaseURL)
		}
	}
	switch c.Server.AuthMode {
	case "", "basic", "jwt":
	default:
		return fmt.Errorf("server.auth_mode: must be \"basic\" or \"jwt\", got %q", c.Server.AuthMode)
	}
	if c.Server.TimeoutSecs < 0 {
		return fmt.Errorf("server.timeout_secs: must be non-negative, got %d", c.Server.TimeoutSecs)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//
//	EMOCHAT_SERVER_URL   overrides server.base_url
//	EMOCHAT_AUTH_MODE    overrides server.auth_mode
//	EMOCHAT_TIMEOUT      overrides server.timeout_secs
//	EMOCHAT_STORAGE_PATH overrides storage.path
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("EMOCHAT_SERVER_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("EMOCHAT_AUTH_MODE"); v != "" {
		c.Server.AuthMode = v
	}
	if v := os.Getenv("EMOCHAT_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Server.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("EMOCHAT_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
}
