// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the agent TUI.
package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/linka-ai/agent-tui/internal/model"
	"github.com/linka-ai/agent-tui/internal/ui/styles"
)

// =============================================================================
// META CARD COMPONENT
// =============================================================================

// cardInnerPadding is the horizontal space the card border and padding
// consume, used when fitting text to the available width.
const cardInnerPadding = 4

// RenderCard renders a single resolved metadata card.
func RenderCard(card model.MetaCard, width int, theme *styles.Theme) string {
	inner := width - cardInnerPadding
	if inner < 10 {
		inner = 10
	}

	var b strings.Builder
	b.WriteString(theme.CardTitle.Render(fitWidth(card.DisplayTitle(), inner)))
	if card.Description != "" {
		b.WriteString("\n")
		b.WriteString(theme.CardDesc.Render(fitWidth(card.Description, inner)))
	}
	b.WriteString("\n")
	b.WriteString(theme.CardURL.Render(fitWidth(card.DisplayURL(), inner)))
	if card.Brand != "" {
		b.WriteString("\n")
		b.WriteString(theme.CardBrand.Render(fitWidth(card.Brand, inner)))
	}

	return theme.CardBox.Width(inner + 2).Render(b.String())
}

// RenderCards renders a card stack in resolution order.
func RenderCards(cards []model.MetaCard, width int, theme *styles.Theme) string {
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, RenderCard(c, width, theme))
	}
	return strings.Join(parts, "\n")
}

// fitWidth truncates s to the given display width, ellipsis included.
// Width-based rather than rune-based so CJK text does not overflow the
// card border.
func fitWidth(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
