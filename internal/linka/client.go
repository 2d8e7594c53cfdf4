// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package linka provides the HTTP client for the Linka agent backend.
package linka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/linka-ai/agent-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Linka backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeBadStatus
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeConnection, Message: "backend is unreachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// Config holds configuration options for the Linka client.
type Config struct {
	// BaseURL is the agent backend base URL.
	BaseURL string

	// Timeout for non-streaming requests (default: 15s).
	Timeout time.Duration

	// MetaLookupLimit bounds concurrent metadata lookups (default: 4).
	MetaLookupLimit int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:         "https://api.linka.ai",
		Timeout:         15 * time.Second,
		MetaLookupLimit: 4,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Identity carries the request identity fields the chat endpoint expects.
type Identity struct {
	UserID   int    `json:"user_id"`
	AgentID  int    `json:"agent_id"`
	PublicID string `json:"public_id"`
}

// chatRequest is the body of POST /api/chat.
type chatRequest struct {
	Query    string `json:"query"`
	UserID   int    `json:"user_id"`
	AgentID  int    `json:"agent_id"`
	PublicID string `json:"public_id"`
}

// Client talks to the Linka agent backend. It is safe for concurrent use.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a client with the given configuration, filling in
// defaults for zero values.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.linka.ai"
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	if config.MetaLookupLimit <= 0 {
		config.MetaLookupLimit = 4
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// =============================================================================
// STREAMING CHAT
// =============================================================================

// ChunkCallback is called for each text chunk received during streaming,
// synchronously and in arrival order.
type ChunkCallback func(chunk string)

// Ask submits a visitor query and streams the response body. The body is
// chunked plain text, not JSON: each read is decoded and handed to the
// callback as-is, markers included. Returns once the stream is drained.
func (c *Client) Ask(ctx context.Context, query string, id Identity, callback ChunkCallback) error {
	body, err := json.Marshal(chatRequest{
		Query:    query,
		UserID:   id.UserID,
		AgentID:  id.AgentID,
		PublicID: id.PublicID,
	})
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	// No client-level timeout while streaming; the context governs it.
	streamClient := &http.Client{}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := streamClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return ErrTimeout
		}
		return ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ClientError{
			Type:    ErrTypeBadStatus,
			Message: "chat request failed: " + resp.Status,
		}
	}

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := resp.Body.Read(buf)
		if n > 0 {
			callback(string(buf[:n]))
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "stream read failed", Cause: err}
		}
	}
}

// Chunk is one streamed event delivered by AskChan. Errors arrive as a
// final chunk with Err set; Done marks the end of the stream either way.
type Chunk struct {
	Text string
	Done bool
	Err  error
}

// AskChan runs Ask in a goroutine and delivers chunks on a channel. The
// channel is closed after the terminal chunk. Late consumers that have
// abandoned the channel are handled via the context.
func (c *Client) AskChan(ctx context.Context, query string, id Identity) <-chan Chunk {
	ch := make(chan Chunk)

	go func() {
		defer close(ch)

		err := c.Ask(ctx, query, id, func(text string) {
			select {
			case ch <- Chunk{Text: text}:
			case <-ctx.Done():
			}
		})

		select {
		case ch <- Chunk{Done: true, Err: err}:
		case <-ctx.Done():
		}
	}()

	return ch
}

// =============================================================================
// METADATA LOOKUP
// =============================================================================

// metaResponse is the envelope of GET /api/get-meta.
type metaResponse struct {
	Data model.MetaCard `json:"data"`
}

// LookupMeta dereferences one metadata token into a card.
func (c *Client) LookupMeta(ctx context.Context, token string) (*model.MetaCard, error) {
	u := c.config.BaseURL + "/api/get-meta?id=" + url.QueryEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ClientError{
			Type:    ErrTypeBadStatus,
			Message: "meta lookup failed: " + resp.Status,
		}
	}

	var result metaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode meta response", Cause: err}
	}

	return &result.Data, nil
}

// =============================================================================
// AGENT CONFIGURATION
// =============================================================================

// FetchAgent loads a published agent's configuration by slug.
func (c *Client) FetchAgent(ctx context.Context, slug string) (*model.AgentConfig, error) {
	u := c.config.BaseURL + "/api/agent/" + url.PathEscape(slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ClientError{
			Type:    ErrTypeBadStatus,
			Message: "agent fetch failed: " + resp.Status,
		}
	}

	var agent model.AgentConfig
	if err := json.NewDecoder(resp.Body).Decode(&agent); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode agent config", Cause: err}
	}

	return &agent, nil
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *Config {
	return c.config
}
