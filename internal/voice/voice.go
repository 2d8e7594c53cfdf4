// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package voice provides speech-to-text input for the composer.
//
// The platform capability is wrapped behind the Recognizer interface so
// the rest of the runtime never branches on capability checks: when no
// recognizer is available a Noop is injected and the mic toggle renders
// permanently disabled while typed input keeps working.
package voice

import (
	"context"
	"errors"
	"sync"
)

// =============================================================================
// RECOGNIZER CAPABILITY
// =============================================================================

// Events receives recognition callbacks. All callbacks may be invoked
// from the recognizer's own goroutine.
type Events struct {
	// OnResult delivers the latest transcript segment. Each result is the
	// full current utterance and replaces, not appends to, the previous.
	OnResult func(text string)

	// OnError reports a recognition failure. The session is over.
	OnError func(err error)

	// OnEnd reports that the session ended on its own (silence timeout,
	// process exit). Not called after OnError.
	OnEnd func()
}

// Recognizer is the platform speech-to-text capability.
type Recognizer interface {
	// Available reports whether the capability can be used at all.
	Available() bool

	// Start begins a recognition session. At most one session is active
	// per recognizer; Start while active is an error.
	Start(ctx context.Context, ev Events) error

	// Stop ends the active session, if any. Idempotent.
	Stop()
}

// ErrUnavailable is returned when starting a recognizer that has no
// usable capability behind it.
var ErrUnavailable = errors.New("speech recognition unavailable")

// =============================================================================
// NOOP RECOGNIZER
// =============================================================================

// Noop is the recognizer injected when no speech capability exists.
type Noop struct{}

// Available implements Recognizer.
func (Noop) Available() bool { return false }

// Start implements Recognizer.
func (Noop) Start(context.Context, Events) error { return ErrUnavailable }

// Stop implements Recognizer.
func (Noop) Stop() {}

// =============================================================================
// ADAPTER STATE MACHINE
// =============================================================================

// EventType tags adapter events.
type EventType int

const (
	// EventResult carries a transcript replacement for the composer.
	EventResult EventType = iota
	// EventError reports a recognition error; the adapter is idle again.
	EventError
	// EventEnd reports the session ended; the adapter is idle again.
	EventEnd
)

// Event is one occurrence surfaced to the UI loop.
type Event struct {
	Type EventType
	Text string
	Err  error
}

// Adapter drives the idle/listening state machine over a Recognizer and
// funnels recognition callbacks into a channel the UI can select on.
//
// All three ways out of listening (user toggle, recognition error, the
// session ending on its own) converge on idle.
type Adapter struct {
	mu        sync.Mutex
	rec       Recognizer
	listening bool
	events    chan Event
}

// NewAdapter creates an adapter over the given recognizer.
func NewAdapter(rec Recognizer) *Adapter {
	if rec == nil {
		rec = Noop{}
	}
	return &Adapter{
		rec:    rec,
		events: make(chan Event, 16),
	}
}

// Available reports whether voice input can ever be started.
func (a *Adapter) Available() bool {
	return a.rec.Available()
}

// Listening reports whether a session is active.
func (a *Adapter) Listening() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listening
}

// Events returns the channel recognition events arrive on.
func (a *Adapter) Events() <-chan Event {
	return a.events
}

// Start transitions idle -> listening. Starting while already listening
// is a no-op.
func (a *Adapter) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.listening {
		a.mu.Unlock()
		return nil
	}
	if !a.rec.Available() {
		a.mu.Unlock()
		return ErrUnavailable
	}
	a.listening = true
	a.mu.Unlock()

	err := a.rec.Start(ctx, Events{
		OnResult: func(text string) {
			a.emit(Event{Type: EventResult, Text: text})
		},
		OnError: func(err error) {
			a.toIdle()
			a.emit(Event{Type: EventError, Err: err})
		},
		OnEnd: func() {
			if a.toIdle() {
				a.emit(Event{Type: EventEnd})
			}
		},
	})
	if err != nil {
		a.toIdle()
		return err
	}
	return nil
}

// Stop transitions listening -> idle by user toggle.
func (a *Adapter) Stop() {
	if a.toIdle() {
		a.rec.Stop()
	}
}

// toIdle flips to idle and reports whether this call did the flip. The
// first path out of listening wins; the others become no-ops.
func (a *Adapter) toIdle() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.listening {
		return false
	}
	a.listening = false
	return true
}

// emit delivers an event without ever blocking a recognizer callback.
func (a *Adapter) emit(ev Event) {
	select {
	case a.events <- ev:
	default:
	}
}
