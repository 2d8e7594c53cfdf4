// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the agent TUI.
//
// This file contains the rendering logic: the header, the welcome
// screen or transcript viewport, the composer, and the status bar.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/linka-ai/agent-tui/internal/model"
	"github.com/linka-ai/agent-tui/internal/ui/components"
)

// headerHeight is the rendered height of the header, border included.
const headerHeight = 2

// composerHeight is the rendered height of the composer box plus the
// status bar, with one extra line when the listening indicator shows.
func composerHeight(c *components.Composer) int {
	if c.Listening() {
		return 5
	}
	return 4
}

// View renders the complete conversation view.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var body string
	if m.state == StateWelcome {
		body = m.welcome.View()
	} else {
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.composer.View(),
		m.renderStatusBar(),
	)
}

// renderHeader renders the agent name with the brand mark.
func (m *Model) renderHeader() string {
	title := m.agent.DisplayName() + "  " + m.theme.HeaderBrand.Render("linka.ai")
	return m.theme.Header.Width(m.width - 2).Render(title)
}

// renderStatusBar renders the shortcut hints.
func (m *Model) renderStatusBar() string {
	hints := []string{
		m.theme.ShortcutKey.Render("Enter") + m.theme.ShortcutDesc.Render(" send"),
	}
	if m.state == StateWelcome && len(m.welcome.Prompts()) > 0 {
		hints = append(hints, m.theme.ShortcutKey.Render("Tab")+m.theme.ShortcutDesc.Render(" prompts"))
	}
	if m.voice.Available() {
		hints = append(hints, m.theme.ShortcutKey.Render("C-g")+m.theme.ShortcutDesc.Render(" voice"))
	}
	hints = append(hints, m.theme.ShortcutKey.Render("C-c")+m.theme.ShortcutDesc.Render(" quit"))

	bar := strings.Join(hints, m.theme.ShortcutDesc.Render("  ·  "))
	if m.streaming {
		bar += m.theme.ShortcutDesc.Render("  ·  ") + m.theme.Listening.Render("responding…")
	}
	return m.theme.StatusBar.Render(bar)
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport(gotoBottom bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	if gotoBottom {
		m.viewport.GotoBottom()
	}
}

// renderTranscript renders the whole message history.
func (m *Model) renderTranscript() string {
	parts := make([]string, 0, len(m.history))
	for i, msg := range m.history {
		switch msg.Kind {
		case model.KindUser:
			parts = append(parts, m.renderUser(msg))
		case model.KindAssistant:
			// The in-flight message renders plain: partial markdown
			// plus the cursor glyph would confuse the renderer.
			streaming := m.streaming && i == len(m.history)-1
			parts = append(parts, m.renderAssistant(msg, streaming))
		case model.KindMeta:
			parts = append(parts, components.RenderCards(msg.Cards, m.width-2, m.theme))
		}
	}
	return strings.Join(parts, "\n\n")
}

func (m *Model) renderUser(msg model.Message) string {
	return m.theme.UserLabel.Render("You") + "\n" + m.theme.UserText.Render(msg.Text)
}

func (m *Model) renderAssistant(msg model.Message, streaming bool) string {
	label := m.theme.AssistantLabel.Render(m.agent.DisplayName())

	switch {
	case msg.Text == errFetchingResponse:
		return label + "\n" + m.theme.ErrorText.Render(msg.Text)
	case streaming:
		return label + "\n" + m.theme.AssistantText.Render(msg.Text)
	default:
		return label + "\n" + m.renderMarkdown(msg.Text)
	}
}

// renderMarkdown renders assistant text as markdown, falling back to
// the raw text when rendering fails.
func (m *Model) renderMarkdown(text string) string {
	if m.markdown == nil || text == "" {
		return m.theme.AssistantText.Render(text)
	}
	rendered, err := m.markdown.Render(text)
	if err != nil {
		return m.theme.AssistantText.Render(text)
	}
	return strings.TrimRight(rendered, "\n")
}
