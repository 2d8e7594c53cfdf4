// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package linka provides the HTTP client for the Linka agent backend.
//
// This package implements the wire side of the chat agent runtime: the
// streaming chat endpoint, the metadata lookup endpoint, the agent
// configuration endpoint, and the marker protocol embedded in streamed
// responses.
//
// # Key Types
//
//   - Client: HTTP client for the agent backend
//   - Identity: visitor identity fields sent with each chat request
//   - Chunk: one streamed event delivered by AskChan
//   - Accumulator: raw/display views of an in-flight response
//
// # The marker protocol
//
// The chat endpoint returns a chunked plain-text body. Interleaved with
// prose, the backend may emit opaque references of the form
//
//	[METAID:token]
//
// which the client strips from display text and later dereferences via
// GET /api/get-meta into rich preview cards:
//
//	err := client.Ask(ctx, "compare plans", id, func(chunk string) {
//	    acc.Add(chunk)
//	    render(acc.Display())
//	})
//	cards := linka.ResolveCards(ctx, client, acc.Raw())
//
// Card order follows token extraction order, never lookup completion
// order, and individual lookup failures drop only their own card.
package linka
