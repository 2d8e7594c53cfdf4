// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package voice provides speech-to-text input for the composer.
package voice

import (
	"bufio"
	"context"
	"os/exec"
	"strings"
	"sync"
)

// =============================================================================
// COMMAND RECOGNIZER
// =============================================================================

// CommandRecognizer runs an external speech-to-text command (for example
// a whisper wrapper around the microphone) and treats each stdout line as
// the full current transcript. The terminal has no Web Speech API; a
// user-configured command is the platform capability here.
type CommandRecognizer struct {
	name string
	args []string

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewCommandRecognizer parses a command line like "whisper-mic --live".
// An empty command yields a recognizer that reports unavailable.
func NewCommandRecognizer(commandLine string) *CommandRecognizer {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return &CommandRecognizer{}
	}
	return &CommandRecognizer{name: fields[0], args: fields[1:]}
}

// Available implements Recognizer.
func (r *CommandRecognizer) Available() bool {
	if r.name == "" {
		return false
	}
	_, err := exec.LookPath(r.name)
	return err == nil
}

// Start implements Recognizer.
func (r *CommandRecognizer) Start(ctx context.Context, ev Events) error {
	if !r.Available() {
		return ErrUnavailable
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return ErrAlreadyListening
	}

	runCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(runCtx, r.name, r.args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return err
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return err
	}
	r.cancel = cancel

	go func() {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if ev.OnResult != nil {
				ev.OnResult(line)
			}
		}

		waitErr := cmd.Wait()

		r.mu.Lock()
		stopped := r.cancel == nil
		r.cancel = nil
		r.mu.Unlock()

		switch {
		case stopped || runCtx.Err() != nil:
			// Stopped deliberately; the adapter already went idle.
			if ev.OnEnd != nil {
				ev.OnEnd()
			}
		case waitErr != nil:
			if ev.OnError != nil {
				ev.OnError(waitErr)
			}
		default:
			if ev.OnEnd != nil {
				ev.OnEnd()
			}
		}
	}()

	return nil
}

// Stop implements Recognizer.
func (r *CommandRecognizer) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// ErrAlreadyListening is returned when Start is called with a session
// still active.
var ErrAlreadyListening = &sessionError{"a recognition session is already active"}

type sessionError struct{ msg string }

func (e *sessionError) Error() string { return e.msg }
