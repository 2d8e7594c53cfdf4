// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package linka provides the HTTP client for the Linka agent backend.
package linka

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// metaServer serves /api/get-meta, answering tokens found in cards and
// returning 404 for everything else.
func metaServer(t *testing.T, cards map[string]string, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		token := r.URL.Query().Get("id")
		title, ok := cards[token]
		if !ok {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]string{"id": token, "title": title},
		})
	}))
}

// =============================================================================
// RESOLUTION TESTS
// =============================================================================

func TestResolveCardsOrderingWithDuplicates(t *testing.T) {
	server := metaServer(t, map[string]string{"a": "Alpha", "b": "Beta"}, nil)
	defer server.Close()

	client := newTestClient(server.URL)
	cards := ResolveCards(context.Background(), client, "x [METAID:a] y [METAID:b] z [METAID:a]")

	if len(cards) != 3 {
		t.Fatalf("Expected 3 cards, got %d", len(cards))
	}
	if cards[0].ID != "a" || cards[1].ID != "b" || cards[2].ID != "a" {
		t.Errorf("Cards out of extraction order: %+v", cards)
	}
}

func TestResolveCardsPartialFailure(t *testing.T) {
	// b is unknown to the server; a and c resolve.
	server := metaServer(t, map[string]string{"a": "Alpha", "c": "Gamma"}, nil)
	defer server.Close()

	client := newTestClient(server.URL)
	cards := ResolveCards(context.Background(), client, "[METAID:a] [METAID:b] [METAID:c]")

	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}
	if cards[0].ID != "a" || cards[1].ID != "c" {
		t.Errorf("Survivors out of order: %+v", cards)
	}
}

func TestResolveCardsNoMarkers(t *testing.T) {
	var hits atomic.Int64
	server := metaServer(t, map[string]string{"a": "Alpha"}, &hits)
	defer server.Close()

	client := newTestClient(server.URL)
	cards := ResolveCards(context.Background(), client, "plain prose, nothing embedded")

	if cards != nil {
		t.Errorf("Expected nil cards, got %+v", cards)
	}
	if hits.Load() != 0 {
		t.Errorf("No lookups should be issued for marker-free text, got %d", hits.Load())
	}
}

func TestResolveCardsAllFail(t *testing.T) {
	server := metaServer(t, map[string]string{}, nil)
	defer server.Close()

	client := newTestClient(server.URL)
	cards := ResolveCards(context.Background(), client, "[METAID:x] [METAID:y]")

	if cards != nil {
		t.Errorf("Expected nil when every lookup fails, got %+v", cards)
	}
}
