// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package linka provides the HTTP client for the Linka agent backend.
//
// This file implements the marker protocol layered over the chat stream.
// The backend interleaves opaque metadata references of the form
// [METAID:token] with normal prose; the visitor must never see them.
// StripMarkers produces display text, ExtractTokens recovers the
// references for resolution, and Accumulator tracks both views while a
// response is still streaming.
package linka

import (
	"regexp"
	"strings"
)

// =============================================================================
// MARKER PATTERNS
// =============================================================================

var (
	// markerPattern matches a metadata marker plus any run of whitespace,
	// hyphen, or bullet characters immediately before it, so stripping a
	// marker also removes the list styling the backend hung it on.
	markerPattern = regexp.MustCompile(`[\s\-•]*\[METAID:[^\]]*\]`)

	// tokenPattern captures the token inside a marker.
	tokenPattern = regexp.MustCompile(`\[METAID:([^\]]*)\]`)
)

// StripMarkers removes every metadata marker (and its leading
// whitespace/hyphen/bullet run) from s. Text without markers is returned
// unchanged, so the function is idempotent.
func StripMarkers(s string) string {
	if !strings.Contains(s, "[METAID:") {
		return s
	}
	return markerPattern.ReplaceAllString(s, "")
}

// ExtractTokens returns every marker token in s in order of occurrence.
// Duplicates are kept: each occurrence resolves to its own card.
func ExtractTokens(s string) []string {
	matches := tokenPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, m[1])
	}
	return tokens
}

// =============================================================================
// STREAM ACCUMULATOR
// =============================================================================

// CursorGlyph is appended to display text while a response is streaming.
const CursorGlyph = "▌"

// Accumulator collects raw stream chunks and derives the marker-free view
// shown to the visitor. Raw text is kept verbatim for token extraction
// after the stream ends.
type Accumulator struct {
	// strings.Builder keeps appends cheap across many small chunks.
	raw strings.Builder
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add appends a raw chunk.
func (a *Accumulator) Add(chunk string) {
	a.raw.WriteString(chunk)
}

// Raw returns the unstripped text accumulated so far.
func (a *Accumulator) Raw() string {
	return a.raw.String()
}

// Display returns the stripped text with the streaming cursor appended.
// The whole buffer is re-stripped on every call so a marker split across
// chunk boundaries disappears as soon as its closing bracket arrives.
func (a *Accumulator) Display() string {
	return StripMarkers(a.raw.String()) + CursorGlyph
}

// Final returns the stripped text without the cursor. This is what gets
// persisted: stored transcripts never contain literal markers.
func (a *Accumulator) Final() string {
	return StripMarkers(a.raw.String())
}
