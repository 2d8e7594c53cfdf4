// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the agent TUI.
package components

import (
	"strings"
	"testing"

	"github.com/linka-ai/agent-tui/internal/model"
	"github.com/linka-ai/agent-tui/internal/ui/styles"
)

func TestRenderCardShowsPlaceholders(t *testing.T) {
	theme := styles.NewTheme()
	out := RenderCard(model.MetaCard{ID: "x"}, 60, theme)

	if !strings.Contains(out, "Untitled") {
		t.Errorf("Card without title should show Untitled:\n%s", out)
	}
	if !strings.Contains(out, "no link") {
		t.Errorf("Card without URL should show the no-link placeholder:\n%s", out)
	}
}

func TestRenderCardsPreservesOrder(t *testing.T) {
	theme := styles.NewTheme()
	cards := []model.MetaCard{
		{Title: "First Product"},
		{Title: "Second Product"},
	}
	out := RenderCards(cards, 60, theme)

	first := strings.Index(out, "First Product")
	second := strings.Index(out, "Second Product")
	if first < 0 || second < 0 || first > second {
		t.Errorf("Cards rendered out of order:\n%s", out)
	}
}

func TestFitWidthTruncatesWideText(t *testing.T) {
	if got := fitWidth("short", 20); got != "short" {
		t.Errorf("fitWidth(short) = %q", got)
	}
	got := fitWidth("a very long title that will not fit", 10)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("fitWidth should end with an ellipsis, got %q", got)
	}
}

func TestWelcomePromptSelection(t *testing.T) {
	agent := &model.AgentConfig{
		Name: "Bot",
		Prompts: []model.Prompt{
			{ID: 1, Text: "one", IsActive: true},
			{ID: 2, Text: "two", IsActive: true},
			{ID: 3, Text: "inactive", IsActive: false},
		},
	}
	w := NewWelcome(agent, styles.NewTheme())

	if len(w.Prompts()) != 2 {
		t.Fatalf("Prompts() has %d entries, want the 2 active ones", len(w.Prompts()))
	}
	if w.Selected().Text != "one" {
		t.Errorf("initial selection = %q", w.Selected().Text)
	}

	w.MoveDown()
	if w.Selected().Text != "two" {
		t.Errorf("after MoveDown selection = %q", w.Selected().Text)
	}
	w.MoveDown() // clamped at the end
	if w.Selected().Text != "two" {
		t.Errorf("selection should clamp at the last prompt, got %q", w.Selected().Text)
	}
	w.MoveUp()
	if w.Selected().Text != "one" {
		t.Errorf("after MoveUp selection = %q", w.Selected().Text)
	}
}

func TestWelcomeWithNilAgent(t *testing.T) {
	w := NewWelcome(nil, styles.NewTheme())

	if w.Selected() != nil {
		t.Error("Nil agent should have no selectable prompt")
	}
	if out := w.View(); !strings.Contains(out, "AI Agent") {
		t.Errorf("Nil agent welcome should show the fallback name:\n%s", out)
	}
}
