// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the agent TUI.
package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/linka-ai/agent-tui/internal/ui/styles"
)

// =============================================================================
// COMPOSER COMPONENT
// =============================================================================

// Composer is the message input area. It wraps a textinput and adds the
// listening indicator for voice capture.
type Composer struct {
	input     textinput.Model
	listening bool
	width     int
	theme     *styles.Theme
}

// NewComposer creates the composer.
func NewComposer(theme *styles.Theme) *Composer {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 4096
	ti.Prompt = "> "
	ti.PromptStyle = theme.InputPrompt
	ti.Focus()

	return &Composer{
		input: ti,
		width: 80,
		theme: theme,
	}
}

// SetWidth updates the composer width.
func (c *Composer) SetWidth(width int) {
	c.width = width
	inner := width - 8
	if inner < 20 {
		inner = 20
	}
	c.input.Width = inner
}

// Value returns the current composer text.
func (c *Composer) Value() string {
	return c.input.Value()
}

// SetValue replaces the composer text and moves the cursor to the end.
// Voice transcripts land here: each result overwrites, never appends.
func (c *Composer) SetValue(text string) {
	c.input.SetValue(text)
	c.input.CursorEnd()
}

// Clear empties the composer.
func (c *Composer) Clear() {
	c.input.Reset()
}

// SetListening toggles the voice capture indicator.
func (c *Composer) SetListening(on bool) {
	c.listening = on
}

// Listening reports whether the voice indicator is shown.
func (c *Composer) Listening() bool {
	return c.listening
}

// Update forwards events to the underlying textinput.
func (c *Composer) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// View renders the composer.
func (c *Composer) View() string {
	box := c.theme.InputContainer.Width(c.width - 2).Render(c.input.View())
	if c.listening {
		return box + "\n" + c.theme.Listening.Render("● listening")
	}
	return box
}
