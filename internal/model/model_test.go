// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for transcripts and agent
// configuration.
package model

import (
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("hello")

	if msg.Kind != KindUser {
		t.Errorf("Expected kind %q, got %q", KindUser, msg.Kind)
	}
	if msg.Text != "hello" {
		t.Errorf("Expected text 'hello', got %q", msg.Text)
	}
	if len(msg.Cards) != 0 {
		t.Error("User message should not carry cards")
	}
}

func TestNewAssistantMessageIsEmpty(t *testing.T) {
	msg := NewAssistantMessage()

	if msg.Kind != KindAssistant {
		t.Errorf("Expected kind %q, got %q", KindAssistant, msg.Kind)
	}
	if !msg.IsEmpty() {
		t.Error("Fresh assistant message should be empty")
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range []Kind{KindUser, KindAssistant, KindMeta} {
		if !k.Valid() {
			t.Errorf("Kind %q should be valid", k)
		}
	}
	if Kind("system").Valid() {
		t.Error("Unknown kind should not be valid")
	}
}

func TestMessagePreview(t *testing.T) {
	msg := NewUserMessage("line one\nline two that is quite long indeed")

	preview := msg.Preview(20)
	if len([]rune(preview)) > 20 {
		t.Errorf("Preview too long: %q", preview)
	}
	for _, r := range preview {
		if r == '\n' {
			t.Error("Preview should not contain newlines")
		}
	}
}

// =============================================================================
// TRANSCRIPT SERIALIZATION TESTS
// =============================================================================

func TestTranscriptRoundTrip(t *testing.T) {
	transcript := []Message{
		NewUserMessage("Hello"),
		{Kind: KindAssistant, Text: "Hi there! welcome."},
		NewMetaMessage([]MetaCard{{Title: "Widget"}}),
	}

	data, err := MarshalTranscript(transcript)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	loaded, err := UnmarshalTranscript(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(loaded) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(loaded))
	}
	if loaded[0].Kind != KindUser || loaded[0].Text != "Hello" {
		t.Errorf("User message mangled: %+v", loaded[0])
	}
	if loaded[1].Kind != KindAssistant {
		t.Errorf("Assistant message mangled: %+v", loaded[1])
	}
	if loaded[2].Kind != KindMeta || len(loaded[2].Cards) != 1 || loaded[2].Cards[0].Title != "Widget" {
		t.Errorf("Meta message mangled: %+v", loaded[2])
	}
}

func TestUnmarshalTranscriptDropsUnknownSenders(t *testing.T) {
	data := []byte(`[{"sender":"user","text":"hi"},{"sender":"robot","text":"?"},{"sender":"assistant","text":"hello"}]`)

	loaded, err := UnmarshalTranscript(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected unknown sender dropped, got %d messages", len(loaded))
	}
}

func TestUnmarshalTranscriptRejectsGarbage(t *testing.T) {
	if _, err := UnmarshalTranscript([]byte("{not json")); err == nil {
		t.Error("Expected error for malformed transcript")
	}
}

// =============================================================================
// META CARD TESTS
// =============================================================================

func TestMetaCardPlaceholders(t *testing.T) {
	var card MetaCard
	if card.DisplayTitle() != "Untitled" {
		t.Errorf("Expected placeholder title, got %q", card.DisplayTitle())
	}
	if card.DisplayURL() != "no link" {
		t.Errorf("Expected placeholder URL, got %q", card.DisplayURL())
	}

	card = MetaCard{Brand: "Acme"}
	if card.DisplayTitle() != "Acme" {
		t.Errorf("Expected brand fallback, got %q", card.DisplayTitle())
	}
}

// =============================================================================
// AGENT CONFIG TESTS
// =============================================================================

func TestActivePromptsPreservesOrder(t *testing.T) {
	cfg := &AgentConfig{
		Prompts: []Prompt{
			{ID: 1, Text: "What can you do?", IsActive: true},
			{ID: 2, Text: "Old prompt", IsActive: false},
			{ID: 3, Text: "Show me pricing", IsActive: true},
		},
	}

	active := cfg.ActivePrompts()
	if len(active) != 2 {
		t.Fatalf("Expected 2 active prompts, got %d", len(active))
	}
	if active[0].ID != 1 || active[1].ID != 3 {
		t.Errorf("Active prompts out of order: %+v", active)
	}
}

func TestActivePromptsNilConfig(t *testing.T) {
	var cfg *AgentConfig
	if cfg.ActivePrompts() != nil {
		t.Error("Nil config should yield nil prompts")
	}
	if cfg.DisplayName() != "AI Agent" {
		t.Errorf("Nil config should use fallback name, got %q", cfg.DisplayName())
	}
}
