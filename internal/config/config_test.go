// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// agent TUI.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, "https://api.linka.ai", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout())
	assert.Equal(t, 24*time.Hour, cfg.SweepInterval())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[backend]
base_url = "http://localhost:8080"
timeout_secs = 5

[agent]
owner_id = 7
agent_id = 42
slug = "support-bot"

[storage]
sweep_interval_hours = 0

[voice]
command = "whisper-mic --live"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, 7, cfg.Agent.OwnerID)
	assert.Equal(t, 42, cfg.Agent.AgentID)
	assert.Equal(t, "support-bot", cfg.Agent.Slug)
	assert.Equal(t, time.Duration(0), cfg.SweepInterval())
	assert.Equal(t, "whisper-mic --live", cfg.Voice.Command)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LINKA_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("LINKA_AGENT_ID", "13")
	t.Setenv("LINKA_AGENT_SLUG", "env-bot")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", cfg.Backend.BaseURL)
	assert.Equal(t, 13, cfg.Agent.AgentID)
	assert.Equal(t, "env-bot", cfg.Agent.Slug)
}

func TestValidateRejectsBadURL(t *testing.T) {
	cfg := Default()
	cfg.Backend.BaseURL = "not a url"
	assert.Error(t, cfg.Validate())

	cfg.Backend.BaseURL = "/relative/only"
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Agent.OwnerID = 3
	cfg.Agent.Slug = "saved-bot"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Agent.OwnerID)
	assert.Equal(t, "saved-bot", loaded.Agent.Slug)
}
