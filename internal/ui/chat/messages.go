// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the agent TUI.
//
// This file defines all Bubble Tea message types used by the chat
// interface. Stream and metadata messages carry the sequence number of
// the send that produced them; messages from a superseded send are
// discarded on arrival.
package chat

import (
	"time"

	"github.com/linka-ai/agent-tui/internal/model"
	"github.com/linka-ai/agent-tui/internal/voice"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamChunkMsg delivers one chunk of raw response text.
type StreamChunkMsg struct {
	Seq  int
	Text string
}

// StreamDoneMsg signals that the stream finished cleanly.
type StreamDoneMsg struct {
	Seq int
}

// StreamErrorMsg signals that the stream failed.
type StreamErrorMsg struct {
	Seq int
	Err error
}

// =============================================================================
// METADATA MESSAGES
// =============================================================================

// MetaResolvedMsg delivers the resolved metadata cards for a completed
// response. Cards is empty when nothing resolved; no meta message is
// appended in that case.
type MetaResolvedMsg struct {
	Seq   int
	Cards []model.MetaCard
}

// =============================================================================
// VOICE MESSAGES
// =============================================================================

// VoiceEventMsg wraps a recognition event from the voice adapter.
type VoiceEventMsg struct {
	Event voice.Event
}

// =============================================================================
// HOUSEKEEPING MESSAGES
// =============================================================================

// SweepTickMsg fires when visitor storage is due for a sweep.
type SweepTickMsg time.Time
