// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package linka provides the HTTP client for the Linka agent backend.
package linka

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/linka-ai/agent-tui/internal/model"
)

// =============================================================================
// METADATA RESOLUTION
// =============================================================================

// ResolveCards extracts every metadata token from the raw assistant text
// and dereferences each into a card.
//
// Lookups fan out concurrently (bounded by MetaLookupLimit) but the
// returned cards are ordered by token extraction order, duplicates
// included. A failed lookup drops only its own card; the siblings are
// unaffected. Zero tokens or zero successes yields nil.
func ResolveCards(ctx context.Context, client *Client, rawText string) []model.MetaCard {
	tokens := ExtractTokens(rawText)
	if len(tokens) == 0 {
		return nil
	}

	results := make([]*model.MetaCard, len(tokens))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(client.GetConfig().MetaLookupLimit)
	for i, token := range tokens {
		i, token := i, token
		g.Go(func() error {
			card, err := client.LookupMeta(gctx, token)
			if err == nil {
				results[i] = card
			}
			// Lookup failures are best-effort: swallow and move on.
			return nil
		})
	}
	// Workers always return nil; Wait only synchronizes.
	_ = g.Wait()

	var cards []model.MetaCard
	for _, card := range results {
		if card != nil {
			cards = append(cards, *card)
		}
	}
	return cards
}
