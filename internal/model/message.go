// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for transcripts and agent
// configuration.
package model

import (
	"encoding/json"
	"strings"
)

// =============================================================================
// MESSAGE KIND
// =============================================================================

// Kind identifies the sender/shape of a transcript message.
// The set is closed: every consumer switches exhaustively over these three.
type Kind string

const (
	KindUser      Kind = "user"
	KindAssistant Kind = "assistant"
	KindMeta      Kind = "meta"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of the three known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindUser, KindAssistant, KindMeta:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindUser:
		return "You"
	case KindAssistant:
		return "Assistant"
	case KindMeta:
		return "Links"
	default:
		return string(k)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is one entry in a conversation transcript.
//
// It is a tagged union over three variants:
//   - user:      Text holds what the visitor typed
//   - assistant: Text holds the (possibly still streaming) reply
//   - meta:      Cards holds the resolved preview cards; Text is empty
//
// The wire format uses a "sender" tag so stored histories stay readable by
// the web widget.
type Message struct {
	Kind  Kind       `json:"sender"`
	Text  string     `json:"text,omitempty"`
	Cards []MetaCard `json:"cards,omitempty"`
}

// NewUserMessage creates a user message.
func NewUserMessage(text string) Message {
	return Message{Kind: KindUser, Text: text}
}

// NewAssistantMessage creates an empty assistant message. It is appended to
// the transcript before any stream bytes arrive so the UI has a target to
// update in place.
func NewAssistantMessage() Message {
	return Message{Kind: KindAssistant}
}

// NewMetaMessage creates a meta message holding resolved cards.
// A meta message is never mutated once created.
func NewMetaMessage(cards []MetaCard) Message {
	return Message{Kind: KindMeta, Cards: cards}
}

// IsEmpty returns true if the message carries no content.
func (m Message) IsEmpty() bool {
	return m.Text == "" && len(m.Cards) == 0
}

// Preview returns a truncated single-line preview of the message text.
func (m Message) Preview(maxLen int) string {
	text := strings.ReplaceAll(m.Text, "\n", " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// TRANSCRIPT SERIALIZATION
// =============================================================================

// MarshalTranscript serializes a transcript for storage.
func MarshalTranscript(msgs []Message) ([]byte, error) {
	return json.Marshal(msgs)
}

// UnmarshalTranscript parses a stored transcript. Messages with an unknown
// sender tag are dropped rather than failing the whole load, so a history
// written by a newer widget degrades instead of erroring.
func UnmarshalTranscript(data []byte) ([]Message, error) {
	var raw []Message
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	msgs := make([]Message, 0, len(raw))
	for _, m := range raw {
		if !m.Kind.Valid() {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// =============================================================================
// META CARD
// =============================================================================

// MetaCard is a rich link/product preview resolved from a metadata token.
// Every field is optional; blank fields render as placeholders, never errors.
type MetaCard struct {
	ID          string `json:"id,omitempty"`
	URL         string `json:"url,omitempty"`
	Image       string `json:"image,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Favicon     string `json:"favicon,omitempty"`
	Brand       string `json:"brand,omitempty"`
}

// DisplayTitle returns the title or a placeholder when absent.
func (c MetaCard) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	if c.Brand != "" {
		return c.Brand
	}
	return "Untitled"
}

// DisplayURL returns the URL or an empty placeholder.
func (c MetaCard) DisplayURL() string {
	if c.URL != "" {
		return c.URL
	}
	return "no link"
}
