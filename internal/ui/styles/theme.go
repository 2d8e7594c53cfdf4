// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the agent TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderBrand lipgloss.Style

	// ==========================================================================
	// WELCOME STYLES
	// ==========================================================================

	WelcomeTitle    lipgloss.Style
	WelcomeSubtitle lipgloss.Style
	PromptItem      lipgloss.Style
	PromptSelected  lipgloss.Style
	PromptHint      lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	UserText       lipgloss.Style
	AssistantText  lipgloss.Style
	ErrorText      lipgloss.Style

	// ==========================================================================
	// META CARD STYLES
	// ==========================================================================

	CardBox   lipgloss.Style
	CardTitle lipgloss.Style
	CardDesc  lipgloss.Style
	CardURL   lipgloss.Style
	CardBrand lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	Listening      lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	// Welcome
	t.WelcomeTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.WelcomeSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.PromptItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.PromptSelected = t.PromptItem.
		BorderForeground(Indigo).
		Foreground(Indigo)

	t.PromptHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Messages
	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	t.AssistantLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.UserText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.AssistantText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose)

	// Meta cards
	t.CardBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(IndigoDeep).
		Padding(0, 1)

	t.CardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.CardDesc = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.CardURL = lipgloss.NewStyle().
		Foreground(Teal).
		Underline(true)

	t.CardBrand = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.Listening = lipgloss.NewStyle().
		Bold(true).
		Foreground(Amber)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}
