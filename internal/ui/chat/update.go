// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the agent TUI.
//
// This file contains the Bubble Tea update loop: key handling, the send
// path, stream and metadata delivery, voice events, and the storage
// sweep.
package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/linka-ai/agent-tui/internal/linka"
	"github.com/linka-ai/agent-tui/internal/model"
	"github.com/linka-ai/agent-tui/internal/voice"
)

// Update handles incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StreamChunkMsg:
		return m.handleStreamChunk(msg)

	case StreamDoneMsg:
		return m.handleStreamDone(msg)

	case StreamErrorMsg:
		return m.handleStreamError(msg)

	case MetaResolvedMsg:
		return m.handleMetaResolved(msg)

	case VoiceEventMsg:
		return m.handleVoiceEvent(msg)

	case SweepTickMsg:
		return m.handleSweepTick()
	}

	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		if m.cancelStream != nil {
			m.cancelStream()
		}
		m.voice.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keyMap.Voice):
		m.toggleVoice()
		return m, nil

	case key.Matches(msg, m.keyMap.PromptUp) && m.state == StateWelcome:
		m.welcome.MoveUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PromptDown) && m.state == StateWelcome:
		m.welcome.MoveDown()
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	return m, m.composer.Update(msg)
}

// =============================================================================
// SEND PATH
// =============================================================================

// submit sends the composer text, or the highlighted quick prompt when
// the composer is empty on the welcome screen. Blank input and an
// in-flight response are both no-ops.
func (m *Model) submit() tea.Cmd {
	if m.streaming {
		return nil
	}

	text := strings.TrimSpace(m.composer.Value())
	if text == "" && m.state == StateWelcome {
		if p := m.welcome.Selected(); p != nil {
			text = p.Text
		}
	}
	if text == "" {
		return nil
	}

	m.composer.Clear()
	return m.send(text)
}

// send appends the user message plus an empty assistant message and
// starts the stream. The welcome screen never comes back after this.
func (m *Model) send(text string) tea.Cmd {
	m.state = StateActive
	m.seq++
	m.history = append(m.history, model.NewUserMessage(text))

	if m.agent == nil {
		reply := model.NewAssistantMessage()
		reply.Text = msgAgentUnavailable
		m.history = append(m.history, reply)
		m.persist()
		m.refreshViewport(true)
		return nil
	}

	m.history = append(m.history, model.NewAssistantMessage())
	m.persist()
	m.refreshViewport(true)

	m.acc = linka.NewAccumulator()
	m.streaming = true

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelStream = cancel
	m.chunks = m.client.AskChan(ctx, text, m.identity)

	m.logger.Debug("Stream started", zap.Int("seq", m.seq))
	return waitStreamChunk(m.chunks, m.seq)
}

// =============================================================================
// STREAM HANDLING
// =============================================================================

func (m *Model) handleStreamChunk(msg StreamChunkMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.seq || !m.streaming {
		return m, nil
	}

	m.acc.Add(msg.Text)
	m.setLastAssistantText(m.acc.Display())
	m.refreshViewport(true)
	return m, waitStreamChunk(m.chunks, m.seq)
}

func (m *Model) handleStreamDone(msg StreamDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.seq || !m.streaming {
		return m, nil
	}

	m.finishStream()
	m.setLastAssistantText(m.acc.Final())
	m.persist()
	m.refreshViewport(true)

	m.logger.Debug("Stream finished", zap.Int("seq", msg.Seq))
	return m, resolveMeta(m.client, m.acc.Raw(), msg.Seq)
}

func (m *Model) handleStreamError(msg StreamErrorMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.seq || !m.streaming {
		return m, nil
	}

	m.finishStream()
	m.setLastAssistantText(errFetchingResponse)
	m.persist()
	m.refreshViewport(true)

	m.logger.Warn("Stream failed", zap.Int("seq", msg.Seq), zap.Error(msg.Err))
	return m, nil
}

func (m *Model) finishStream() {
	m.streaming = false
	if m.cancelStream != nil {
		m.cancelStream()
		m.cancelStream = nil
	}
}

// =============================================================================
// METADATA HANDLING
// =============================================================================

func (m *Model) handleMetaResolved(msg MetaResolvedMsg) (tea.Model, tea.Cmd) {
	// A newer send supersedes these cards.
	if msg.Seq != m.seq {
		return m, nil
	}
	if len(msg.Cards) == 0 {
		return m, nil
	}

	m.history = append(m.history, model.NewMetaMessage(msg.Cards))
	m.persist()
	m.refreshViewport(true)
	return m, nil
}

// =============================================================================
// VOICE HANDLING
// =============================================================================

// toggleVoice flips between idle and listening. With no recognizer
// available the binding is a silent no-op.
func (m *Model) toggleVoice() {
	if !m.voice.Available() {
		return
	}
	if m.voice.Listening() {
		m.voice.Stop()
		m.composer.SetListening(false)
		return
	}
	if err := m.voice.Start(context.Background()); err != nil {
		m.logger.Warn("Voice start failed", zap.Error(err))
		return
	}
	// A fresh capture starts from an empty composer.
	m.composer.Clear()
	m.composer.SetListening(true)
}

func (m *Model) handleVoiceEvent(msg VoiceEventMsg) (tea.Model, tea.Cmd) {
	switch msg.Event.Type {
	case voice.EventResult:
		// Each transcript replaces the composer text wholesale.
		m.composer.SetValue(msg.Event.Text)
	case voice.EventError:
		m.composer.SetListening(false)
		m.logger.Warn("Voice recognition failed", zap.Error(msg.Event.Err))
	case voice.EventEnd:
		m.composer.SetListening(false)
	}
	return m, waitVoiceEvent(m.voice.Events())
}

// =============================================================================
// HOUSEKEEPING
// =============================================================================

// handleSweepTick clears visitor storage. The in-memory conversation
// keeps going; the next run simply starts from a fresh identity.
func (m *Model) handleSweepTick() (tea.Model, tea.Cmd) {
	n, err := m.visitors.SweepExpired()
	if err != nil {
		m.logger.Warn("Storage sweep failed", zap.Error(err))
	} else if n > 0 {
		m.logger.Info("Storage sweep", zap.Int("removed", n))
	}
	return m, sweepTick(m.sweepInterval)
}

// =============================================================================
// HELPERS
// =============================================================================

// setLastAssistantText updates the most recent assistant message.
func (m *Model) setLastAssistantText(text string) {
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].Kind == model.KindAssistant {
			m.history[i].Text = text
			return
		}
	}
}

// persist writes the transcript to visitor storage.
func (m *Model) persist() {
	m.visitors.SaveHistory(m.identity.PublicID, m.history)
}
