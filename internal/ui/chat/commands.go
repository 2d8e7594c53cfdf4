// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the agent TUI.
//
// This file holds the Bubble Tea commands that bridge channels and
// blocking calls into messages.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linka-ai/agent-tui/internal/linka"
	"github.com/linka-ai/agent-tui/internal/voice"
)

// metaResolveTimeout bounds the whole card fan-out after a stream ends.
const metaResolveTimeout = 30 * time.Second

// waitStreamChunk waits for the next chunk of the stream identified by
// seq and maps it to a chat message.
func waitStreamChunk(ch <-chan linka.Chunk, seq int) tea.Cmd {
	return func() tea.Msg {
		chunk, ok := <-ch
		if !ok {
			return StreamDoneMsg{Seq: seq}
		}
		if chunk.Done {
			if chunk.Err != nil {
				return StreamErrorMsg{Seq: seq, Err: chunk.Err}
			}
			return StreamDoneMsg{Seq: seq}
		}
		return StreamChunkMsg{Seq: seq, Text: chunk.Text}
	}
}

// resolveMeta resolves metadata cards for a finished response.
func resolveMeta(client *linka.Client, rawText string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), metaResolveTimeout)
		defer cancel()
		return MetaResolvedMsg{Seq: seq, Cards: linka.ResolveCards(ctx, client, rawText)}
	}
}

// waitVoiceEvent waits for the next recognition event.
func waitVoiceEvent(ch <-chan voice.Event) tea.Cmd {
	return func() tea.Msg {
		return VoiceEventMsg{Event: <-ch}
	}
}

// sweepTick schedules the next storage sweep.
func sweepTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return SweepTickMsg(t)
	})
}
