// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides visitor identity and transcript persistence.
package store

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linka-ai/agent-tui/internal/model"
)

// Storage key prefixes. These match the widget's localStorage scheme so an
// identity minted by either client survives a switch to the other.
const (
	publicIDPrefix = "public_id_"
	historyPrefix  = "chat_history_"
)

// =============================================================================
// VISITORS STORE
// =============================================================================

// Visitors manages per-visitor pseudo-identities and their transcripts on
// top of a KV backend.
type Visitors struct {
	kv  KV
	log *zap.Logger
}

// NewVisitors creates a visitor store over the given KV.
func NewVisitors(kv KV, log *zap.Logger) *Visitors {
	if log == nil {
		log = zap.NewNop()
	}
	return &Visitors{kv: kv, log: log}
}

// =============================================================================
// IDENTITY
// =============================================================================

// PublicID returns the stable pseudo-identity for an (owner, agent) pair,
// minting and persisting one on first use. The identity has the form
// "{owner}-{agent}-{uuid}" and is stored under "public_id_{owner}_{agent}".
func (v *Visitors) PublicID(ownerID, agentID int) (string, error) {
	key := publicIDKey(ownerID, agentID)

	if id, ok, err := v.kv.Get(key); err != nil {
		return "", err
	} else if ok && id != "" {
		return id, nil
	}

	id := strconv.Itoa(ownerID) + "-" + strconv.Itoa(agentID) + "-" + uuid.NewString()
	if err := v.kv.Set(key, id); err != nil {
		return "", err
	}
	v.log.Debug("minted visitor identity",
		zap.Int("owner_id", ownerID),
		zap.Int("agent_id", agentID))
	return id, nil
}

// publicIDKey builds the deterministic storage key for a pair.
func publicIDKey(ownerID, agentID int) string {
	return publicIDPrefix + strconv.Itoa(ownerID) + "_" + strconv.Itoa(agentID)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// LoadHistory returns the stored transcript for an identity. A missing
// entry or one that fails to parse yields an empty transcript, never an
// error: stale or corrupt history must not break the chat.
func (v *Visitors) LoadHistory(publicID string) []model.Message {
	raw, ok, err := v.kv.Get(historyPrefix + publicID)
	if err != nil || !ok || raw == "" {
		return nil
	}

	msgs, err := model.UnmarshalTranscript([]byte(raw))
	if err != nil {
		v.log.Warn("discarding unparseable chat history", zap.Error(err))
		return nil
	}
	return msgs
}

// SaveHistory persists the transcript for an identity, replacing any prior
// value wholly. Failures are logged and swallowed; persistence is
// fire-and-forget from the caller's point of view.
func (v *Visitors) SaveHistory(publicID string, msgs []model.Message) {
	data, err := model.MarshalTranscript(msgs)
	if err != nil {
		v.log.Warn("failed to serialize chat history", zap.Error(err))
		return
	}
	if err := v.kv.Set(historyPrefix+publicID, string(data)); err != nil {
		v.log.Warn("failed to persist chat history", zap.Error(err))
	}
}

// =============================================================================
// EXPIRY SWEEP
// =============================================================================

// SweepExpired removes every visitor identity and transcript entry.
//
// The widget bounds storage growth with a blanket periodic clear rather
// than per-entry TTLs; entries carry no timestamps to expire against.
// Returns the number of entries removed.
func (v *Visitors) SweepExpired() (int, error) {
	keys, err := v.kv.Keys()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, k := range keys {
		if !strings.HasPrefix(k, publicIDPrefix) && !strings.HasPrefix(k, historyPrefix) {
			continue
		}
		if err := v.kv.Remove(k); err != nil {
			v.log.Warn("sweep failed to remove entry", zap.String("key", k), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		v.log.Info("swept visitor storage", zap.Int("removed", removed))
	}
	return removed, nil
}
