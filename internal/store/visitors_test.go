// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides visitor identity and transcript persistence.
package store

import (
	"strings"
	"testing"

	"github.com/linka-ai/agent-tui/internal/model"
)

// =============================================================================
// IDENTITY TESTS
// =============================================================================

func TestPublicIDStable(t *testing.T) {
	v := NewVisitors(NewMemory(), nil)

	first, err := v.PublicID(7, 42)
	if err != nil {
		t.Fatalf("PublicID failed: %v", err)
	}
	second, err := v.PublicID(7, 42)
	if err != nil {
		t.Fatalf("PublicID failed: %v", err)
	}

	if first != second {
		t.Errorf("Identity not stable: %q vs %q", first, second)
	}
	if !strings.HasPrefix(first, "7-42-") {
		t.Errorf("Identity missing owner/agent prefix: %q", first)
	}
}

func TestPublicIDDistinctPerPair(t *testing.T) {
	v := NewVisitors(NewMemory(), nil)

	a, _ := v.PublicID(7, 42)
	b, _ := v.PublicID(7, 43)
	c, _ := v.PublicID(8, 42)

	if a == b || a == c || b == c {
		t.Errorf("Identities collide: %q %q %q", a, b, c)
	}
}

func TestPublicIDSurvivesReload(t *testing.T) {
	kv := NewMemory()

	first, _ := NewVisitors(kv, nil).PublicID(1, 2)
	// A fresh store over the same KV models a page reload.
	second, _ := NewVisitors(kv, nil).PublicID(1, 2)

	if first != second {
		t.Errorf("Identity did not survive reload: %q vs %q", first, second)
	}
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestHistoryRoundTrip(t *testing.T) {
	v := NewVisitors(NewMemory(), nil)
	id, _ := v.PublicID(1, 1)

	transcript := []model.Message{
		model.NewUserMessage("Hello"),
		{Kind: model.KindAssistant, Text: "Hi there! welcome."},
		model.NewMetaMessage([]model.MetaCard{{Title: "Widget"}}),
	}
	v.SaveHistory(id, transcript)

	loaded := v.LoadHistory(id)
	if len(loaded) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(loaded))
	}
	if loaded[2].Kind != model.KindMeta || loaded[2].Cards[0].Title != "Widget" {
		t.Errorf("Transcript order/content lost: %+v", loaded)
	}
}

func TestLoadHistoryMissing(t *testing.T) {
	v := NewVisitors(NewMemory(), nil)

	if msgs := v.LoadHistory("1-1-nope"); len(msgs) != 0 {
		t.Errorf("Missing history should be empty, got %d messages", len(msgs))
	}
}

func TestLoadHistoryCorrupt(t *testing.T) {
	kv := NewMemory()
	kv.Set("chat_history_1-1-x", "{definitely not json")

	v := NewVisitors(kv, nil)
	if msgs := v.LoadHistory("1-1-x"); len(msgs) != 0 {
		t.Errorf("Corrupt history should load as empty, got %d messages", len(msgs))
	}
}

func TestSaveHistoryOverwrites(t *testing.T) {
	v := NewVisitors(NewMemory(), nil)

	v.SaveHistory("id", []model.Message{model.NewUserMessage("one")})
	v.SaveHistory("id", []model.Message{model.NewUserMessage("two")})

	loaded := v.LoadHistory("id")
	if len(loaded) != 1 || loaded[0].Text != "two" {
		t.Errorf("Save should replace wholly, got %+v", loaded)
	}
}

// =============================================================================
// SWEEP TESTS
// =============================================================================

func TestSweepExpiredClearsVisitorEntries(t *testing.T) {
	kv := NewMemory()
	kv.Set("public_id_1_2", "1-2-abc")
	kv.Set("chat_history_1-2-abc", "[]")
	kv.Set("unrelated_key", "keep me")

	v := NewVisitors(kv, nil)
	removed, err := v.SweepExpired()
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 entries removed, got %d", removed)
	}

	if _, ok, _ := kv.Get("unrelated_key"); !ok {
		t.Error("Sweep must not touch unrelated keys")
	}
	if _, ok, _ := kv.Get("public_id_1_2"); ok {
		t.Error("Identity should have been swept")
	}
}

func TestSweepThenFreshIdentity(t *testing.T) {
	v := NewVisitors(NewMemory(), nil)

	before, _ := v.PublicID(3, 4)
	v.SweepExpired()
	after, _ := v.PublicID(3, 4)

	if before == after {
		t.Error("A swept pair should mint a fresh identity")
	}
}

// =============================================================================
// SQLITE BACKEND TESTS
// =============================================================================

func TestSQLiteKVRoundTrip(t *testing.T) {
	kv, err := OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer kv.Close()

	if err := kv.Set("a", "1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := kv.Set("a", "2"); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	got, ok, err := kv.Get("a")
	if err != nil || !ok || got != "2" {
		t.Errorf("Get = (%q, %v, %v), want (2, true, nil)", got, ok, err)
	}

	if _, ok, _ := kv.Get("missing"); ok {
		t.Error("Missing key should report ok=false")
	}

	kv.Set("b", "3")
	keys, err := kv.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys = %v, want [a b]", keys)
	}

	if err := kv.Remove("a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := kv.Remove("a"); err != nil {
		t.Errorf("Removing absent key should not error: %v", err)
	}
}

func TestVisitorsOnSQLite(t *testing.T) {
	kv, err := OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer kv.Close()

	v := NewVisitors(kv, nil)
	id, err := v.PublicID(9, 9)
	if err != nil {
		t.Fatalf("PublicID failed: %v", err)
	}

	v.SaveHistory(id, []model.Message{model.NewUserMessage("persisted")})
	if msgs := v.LoadHistory(id); len(msgs) != 1 || msgs[0].Text != "persisted" {
		t.Errorf("History lost on sqlite backend: %+v", msgs)
	}
}
