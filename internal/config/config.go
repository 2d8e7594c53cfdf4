// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// agent TUI.
//
// Configuration is TOML at ~/.linka/config.toml with environment variable
// overrides and built-in defaults, in that order of precedence:
//   - LINKA_* environment variables
//   - ~/.linka/config.toml
//   - defaults
package config

import (
	"bytes"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/linka-ai/agent-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete agent TUI configuration.
type Config struct {
	// Backend is the Linka backend connection settings.
	Backend BackendConfig `toml:"backend"`

	// Agent selects which published agent to talk to.
	Agent AgentConfig `toml:"agent"`

	// Storage controls visitor identity/history persistence.
	Storage StorageConfig `toml:"storage"`

	// Voice configures the speech-to-text command.
	Voice VoiceConfig `toml:"voice"`
}

// BackendConfig holds backend connection settings.
type BackendConfig struct {
	// BaseURL of the agent backend.
	BaseURL string `toml:"base_url"`
	// TimeoutSecs for non-streaming requests.
	TimeoutSecs int `toml:"timeout_secs"`
}

// AgentConfig selects the agent.
type AgentConfig struct {
	// OwnerID is the account that owns the agent.
	OwnerID int `toml:"owner_id"`
	// AgentID is the numeric agent id.
	AgentID int `toml:"agent_id"`
	// Slug is the public agent slug used to fetch its configuration.
	Slug string `toml:"slug"`
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	// DataDir is where the visitor database lives (default ~/.linka).
	DataDir string `toml:"data_dir"`
	// SweepIntervalHours is how often visitor storage is cleared.
	// 0 disables the sweep.
	SweepIntervalHours int `toml:"sweep_interval_hours"`
}

// VoiceConfig holds speech input settings.
type VoiceConfig struct {
	// Command is an external speech-to-text command that writes
	// transcript lines to stdout. Empty disables voice input.
	Command string `toml:"command"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:     "https://api.linka.ai",
			TimeoutSecs: 15,
		},
		Storage: StorageConfig{
			SweepIntervalHours: 24,
		},
	}
}

// Timeout returns the backend timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.Backend.TimeoutSecs <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Backend.TimeoutSecs) * time.Second
}

// SweepInterval returns the sweep interval as a duration; 0 means the
// sweep is disabled.
func (c *Config) SweepInterval() time.Duration {
	if c.Storage.SweepIntervalHours <= 0 {
		return 0
	}
	return time.Duration(c.Storage.SweepIntervalHours) * time.Hour
}

// DataDir returns the configured data directory, defaulting to ~/.linka.
func (c *Config) DataDir() (string, error) {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".linka"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".linka", "config.toml"), nil
}

// Load reads configuration from path, layering environment overrides on
// top. A missing file is not an error: defaults plus env apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, err
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers LINKA_* environment variables over cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("LINKA_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("LINKA_OWNER_ID"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Agent.OwnerID = n
		}
	}
	if v := os.Getenv("LINKA_AGENT_ID"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Agent.AgentID = n
		}
	}
	if v := os.Getenv("LINKA_AGENT_SLUG"); v != "" {
		cfg.Agent.Slug = v
	}
	if v := os.Getenv("LINKA_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("LINKA_VOICE_COMMAND"); v != "" {
		cfg.Voice.Command = v
	}
}

// Validate checks invariants that would otherwise surface as confusing
// runtime failures.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("backend.base_url must be an absolute URL")
	}
	if c.Agent.OwnerID < 0 || c.Agent.AgentID < 0 {
		return errors.New("agent ids must not be negative")
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to path atomically.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}
