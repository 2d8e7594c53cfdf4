// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for transcripts and agent
// configuration.
package model

// =============================================================================
// AGENT CONFIGURATION
// =============================================================================

// AgentConfig is the configuration of one published agent. The runtime
// treats it as read-only input: it is fetched (or provided by the host)
// once at startup and never mutated.
type AgentConfig struct {
	// Identity
	UserID int    `json:"user_id"`
	ID     int    `json:"id"`
	Slug   string `json:"ai_agent_slug"`

	// Display
	Name          string `json:"ai_agent_name"`
	Avatar        string `json:"avatar,omitempty"`
	GreetingTitle string `json:"greeting_title,omitempty"`

	// Conversation starters, in the order the builder saved them.
	Prompts []Prompt `json:"prompts,omitempty"`
}

// Prompt is one conversation-starter suggestion.
type Prompt struct {
	ID       int    `json:"id"`
	Text     string `json:"prompt_text"`
	IsActive bool   `json:"is_active"`
}

// ActivePrompts returns the active prompts in their configured order.
func (a *AgentConfig) ActivePrompts() []Prompt {
	if a == nil {
		return nil
	}
	var active []Prompt
	for _, p := range a.Prompts {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active
}

// DisplayName returns the agent name or a fallback.
func (a *AgentConfig) DisplayName() string {
	if a == nil || a.Name == "" {
		return "AI Agent"
	}
	return a.Name
}

// Greeting returns the greeting title or a fallback built from the name.
func (a *AgentConfig) Greeting() string {
	if a != nil && a.GreetingTitle != "" {
		return a.GreetingTitle
	}
	return "Hi! Ask " + a.DisplayName() + " anything."
}
