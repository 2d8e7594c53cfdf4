// agent-tui - A terminal client for Linka.ai published chat agents.
//
// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/linka-ai/agent-tui/internal/config"
	"github.com/linka-ai/agent-tui/internal/linka"
	"github.com/linka-ai/agent-tui/internal/logging"
	"github.com/linka-ai/agent-tui/internal/model"
	"github.com/linka-ai/agent-tui/internal/store"
	"github.com/linka-ai/agent-tui/internal/ui/chat"
	"github.com/linka-ai/agent-tui/internal/voice"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config.toml (default ~/.linka/config.toml)")
		debug      = flag.Bool("debug", false, "enable debug logging")
		version    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Printf("agent-tui %s (%s)\n", Version, GitCommit)
		return
	}

	if err := run(*configPath, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, debug bool) error {
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		return fmt.Errorf("resolving data directory: %w", err)
	}

	logger := logging.New(dataDir, debug)
	defer logger.Sync()
	logger.Info("Starting agent-tui",
		zap.String("version", Version),
		zap.String("backend", cfg.Backend.BaseURL))

	// Visitor storage
	kv, err := store.OpenSQLite(dataDir)
	if err != nil {
		return fmt.Errorf("opening visitor storage: %w", err)
	}
	defer kv.Close()
	visitors := store.NewVisitors(kv, logger)

	// Backend client
	clientCfg := linka.DefaultConfig()
	clientCfg.BaseURL = cfg.Backend.BaseURL
	clientCfg.Timeout = cfg.Timeout()
	client := linka.NewClient(clientCfg)

	// The agent config is best-effort: the conversation still runs
	// without it, every send just gets the unavailable notice.
	agent := fetchAgent(client, cfg, logger)

	// Voice input
	var rec voice.Recognizer = voice.Noop{}
	if cfg.Voice.Command != "" {
		rec = voice.NewCommandRecognizer(cfg.Voice.Command)
	}

	m, err := chat.New(chat.Options{
		Client:        client,
		Visitors:      visitors,
		Agent:         agent,
		OwnerID:       cfg.Agent.OwnerID,
		AgentID:       cfg.Agent.AgentID,
		Voice:         voice.NewAdapter(rec),
		Logger:        logger,
		SweepInterval: cfg.SweepInterval(),
	})
	if err != nil {
		return fmt.Errorf("building chat view: %w", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	logger.Info("Shutting down")
	return nil
}

// fetchAgent loads the published agent configuration by slug. Failure
// degrades to nil rather than blocking startup.
func fetchAgent(client *linka.Client, cfg *config.Config, logger *zap.Logger) *model.AgentConfig {
	if cfg.Agent.Slug == "" {
		logger.Warn("No agent slug configured")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	agent, err := client.FetchAgent(ctx, cfg.Agent.Slug)
	if err != nil {
		logger.Warn("Agent fetch failed", zap.String("slug", cfg.Agent.Slug), zap.Error(err))
		return nil
	}
	logger.Info("Agent loaded", zap.String("slug", cfg.Agent.Slug), zap.String("name", agent.DisplayName()))
	return agent
}
