// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the agent TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/linka-ai/agent-tui/internal/model"
	"github.com/linka-ai/agent-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN COMPONENT
// =============================================================================

// Welcome is the pre-conversation screen: the agent greeting plus its
// quick prompts. It disappears for good once the first message is sent.
type Welcome struct {
	agent    *model.AgentConfig
	prompts  []model.Prompt
	selected int

	width  int
	height int

	theme *styles.Theme
}

// NewWelcome creates the welcome screen for an agent. A nil agent still
// renders; the prompt list is simply empty.
func NewWelcome(agent *model.AgentConfig, theme *styles.Theme) Welcome {
	return Welcome{
		agent:   agent,
		prompts: agent.ActivePrompts(),
		theme:   theme,
	}
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// Prompts returns the quick prompts on display.
func (w *Welcome) Prompts() []model.Prompt {
	return w.prompts
}

// Selected returns the currently highlighted prompt, or nil when there
// are no prompts.
func (w *Welcome) Selected() *model.Prompt {
	if len(w.prompts) == 0 {
		return nil
	}
	return &w.prompts[w.selected]
}

// MoveUp moves the prompt highlight up.
func (w *Welcome) MoveUp() {
	if w.selected > 0 {
		w.selected--
	}
}

// MoveDown moves the prompt highlight down.
func (w *Welcome) MoveDown() {
	if w.selected < len(w.prompts)-1 {
		w.selected++
	}
}

// View renders the welcome screen.
func (w *Welcome) View() string {
	var b strings.Builder

	b.WriteString(w.theme.WelcomeTitle.Render(w.agent.DisplayName()))
	b.WriteString("\n")
	b.WriteString(w.theme.WelcomeSubtitle.Render(w.agent.Greeting()))
	b.WriteString("\n")

	if len(w.prompts) > 0 {
		b.WriteString("\n")
		for i, p := range w.prompts {
			style := w.theme.PromptItem
			if i == w.selected {
				style = w.theme.PromptSelected
			}
			b.WriteString(style.Render(p.Text))
			b.WriteString("\n")
		}
		b.WriteString(w.theme.PromptHint.Render("tab to pick a prompt, enter to send"))
	}

	content := b.String()
	if w.width > 0 && w.height > 0 {
		return lipgloss.Place(w.width, w.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
