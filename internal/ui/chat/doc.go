// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the agent TUI.
//
// The view has two lifecycle phases. StateWelcome shows the agent
// greeting and its quick prompts; StateActive shows the transcript.
// The transition happens on the first send and is one-way, matching
// how a stored transcript skips the welcome screen on startup.
//
// A response stream is identified by a send sequence number. Chunk,
// completion, error, and metadata messages all carry the number of the
// send that produced them, so anything arriving for a superseded send
// is dropped on the floor instead of corrupting the current exchange.
//
// # Files
//
//   - model.go: Model struct, construction, resize handling
//   - update.go: the update loop, send path, stream and voice handling
//   - commands.go: channel-to-message bridge commands
//   - view.go: all rendering
//   - messages.go: Bubble Tea message catalogue
//   - keys.go: key bindings
package chat
