// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the agent TUI.
package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/linka-ai/agent-tui/internal/linka"
	"github.com/linka-ai/agent-tui/internal/model"
	"github.com/linka-ai/agent-tui/internal/store"
	"github.com/linka-ai/agent-tui/internal/ui/components"
	"github.com/linka-ai/agent-tui/internal/ui/styles"
	"github.com/linka-ai/agent-tui/internal/voice"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the lifecycle phase of the conversation view.
type State int

const (
	// StateWelcome shows the greeting and quick prompts. Only an empty
	// transcript starts here.
	StateWelcome State = iota
	// StateActive shows the transcript. The transition from welcome is
	// one-way; sending the first message commits to it.
	StateActive
)

// Fixed user-facing strings. These are shown verbatim, never the
// underlying error text.
const (
	errFetchingResponse = "Error fetching response."
	msgAgentUnavailable = "Agent details are unavailable."
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options carries the dependencies for a chat model.
type Options struct {
	Client   *linka.Client
	Visitors *store.Visitors
	Agent    *model.AgentConfig // nil when agent details could not be fetched
	OwnerID  int
	AgentID  int
	Voice    *voice.Adapter
	Logger   *zap.Logger
	// SweepInterval between visitor storage sweeps; 0 disables them.
	SweepInterval time.Duration
}

// Model is the Bubble Tea model for the conversation view.
type Model struct {
	state     State
	streaming bool
	// seq numbers each send. Stream and meta messages carry the seq of
	// the send that produced them so stale ones can be dropped.
	seq int

	theme  *styles.Theme
	width  int
	height int
	ready  bool

	// Conversation
	agent    *model.AgentConfig
	identity linka.Identity
	history  []model.Message

	// Backend
	client   *linka.Client
	visitors *store.Visitors

	// In-flight stream
	acc          *linka.Accumulator
	chunks       <-chan linka.Chunk
	cancelStream context.CancelFunc

	// Voice
	voice *voice.Adapter

	// UI components
	viewport viewport.Model
	welcome  components.Welcome
	composer *components.Composer
	markdown *glamour.TermRenderer
	keyMap   KeyMap

	logger        *zap.Logger
	sweepInterval time.Duration
}

// New creates the conversation view. The visitor identity is minted or
// recalled from storage, and a non-empty stored transcript skips the
// welcome screen entirely.
func New(opts Options) (*Model, error) {
	publicID, err := opts.Visitors.PublicID(opts.OwnerID, opts.AgentID)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	theme := styles.NewTheme()
	m := &Model{
		theme: theme,
		agent: opts.Agent,
		identity: linka.Identity{
			UserID:   opts.OwnerID,
			AgentID:  opts.AgentID,
			PublicID: publicID,
		},
		history:       opts.Visitors.LoadHistory(publicID),
		client:        opts.Client,
		visitors:      opts.Visitors,
		voice:         opts.Voice,
		welcome:       components.NewWelcome(opts.Agent, theme),
		composer:      components.NewComposer(theme),
		keyMap:        DefaultKeyMap(),
		logger:        logger,
		sweepInterval: opts.SweepInterval,
	}
	if m.voice == nil {
		m.voice = voice.NewAdapter(nil)
	}
	if len(m.history) > 0 {
		m.state = StateActive
	}
	return m, nil
}

// State returns the current lifecycle phase.
func (m *Model) State() State {
	return m.state
}

// Streaming reports whether a response is in flight.
func (m *Model) Streaming() bool {
	return m.streaming
}

// History returns the transcript.
func (m *Model) History() []model.Message {
	return m.history
}

// Init starts the background listeners.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitVoiceEvent(m.voice.Events())}
	if m.sweepInterval > 0 {
		cmds = append(cmds, sweepTick(m.sweepInterval))
	}
	return tea.Batch(cmds...)
}

// handleResize recomputes component dimensions.
func (m *Model) handleResize(width, height int) {
	m.width = width
	m.height = height
	m.composer.SetWidth(width)

	viewportHeight := height - composerHeight(m.composer) - headerHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = viewportHeight
	}
	m.welcome.SetSize(width, viewportHeight)

	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		// Plain text fallback.
		renderer = nil
	}
	m.markdown = renderer

	m.refreshViewport(false)
}
