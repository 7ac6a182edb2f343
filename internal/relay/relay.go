// Package relay implements the streaming core of the optimizer: it accepts
// a prompt, calls the remote completion provider with streaming requested,
// forwards each increment to the client over SSE, and degrades to a locally
// generated fallback when the upstream fails.
package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/zhengjr9/promptyoo/internal/fallback"
	"github.com/zhengjr9/promptyoo/internal/httperr"
	"github.com/zhengjr9/promptyoo/internal/provider"
	"github.com/zhengjr9/promptyoo/internal/session"
)

// optimizeRequest is the body of POST /api/optimize.
type optimizeRequest struct {
	Prompt string `json:"prompt"`
}

// Handler serves POST /api/optimize. Each request gets its own independent
// stream; no state is shared across requests except the session store.
type Handler struct {
	client        provider.Client
	sessions      *session.Store
	generate      fallback.Generator
	defaultAPIKey string
	timeout       time.Duration
}

// NewHandler constructs a Handler. The provider client is injected so tests
// can substitute a scripted one. defaultAPIKey may be empty; it is the last
// resort after per-request and session credentials.
func NewHandler(client provider.Client, sessions *session.Store, generate fallback.Generator, defaultAPIKey string, timeout time.Duration) *Handler {
	return &Handler{
		client:        client,
		sessions:      sessions,
		generate:      generate,
		defaultAPIKey: defaultAPIKey,
		timeout:       timeout,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.WriteJSON(w, http.StatusBadRequest, httperr.ErrMalformedBody.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		httperr.WriteJSON(w, http.StatusBadRequest, "prompt is required")
		return
	}

	slog.Info("optimize request", "prompt_chars", len(req.Prompt))

	ctx := r.Context()
	var cancel context.CancelFunc
	if h.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	apiKey := h.resolveAPIKey(r)

	// Commit to streaming before the upstream call resolves; from here on
	// every failure is reported in-band as a terminal error frame.
	ew := newEventWriter(w)
	ew.open()

	if apiKey == "" {
		h.terminate(ew, classify(httperr.ErrMissingAPIKey, req.Prompt, h.generate))
		return
	}

	stream, err := h.client.StreamCompletion(ctx, apiKey, req.Prompt)
	if err != nil {
		slog.Error("upstream call failed", "error", err)
		h.terminate(ew, classify(err, req.Prompt, h.generate))
		return
	}

	// The accumulated text is for logging and the empty-stream check only;
	// every delta has already been forwarded by the time it is appended.
	var full strings.Builder
	for chunk := range stream {
		if chunk.Err != nil {
			slog.Error("upstream stream failed", "error", chunk.Err)
			h.terminate(ew, classify(chunk.Err, req.Prompt, h.generate))
			return
		}
		if chunk.Text == "" {
			continue
		}
		full.WriteString(chunk.Text)
		if err := ew.writeEvent(contentFrame{Content: chunk.Text}); err != nil {
			// Client went away; no terminal frame can reach it.
			slog.Warn("client disconnected mid-stream", "error", err)
			return
		}
	}

	if full.Len() == 0 {
		h.terminate(ew, classify(provider.NewError(provider.KindProtocol, "empty response from upstream", nil), req.Prompt, h.generate))
		return
	}

	slog.Info("completed streaming", "response_chars", full.Len())
	if err := ew.writeEvent(doneFrame{Done: true}); err != nil {
		slog.Warn("client disconnected before completion frame", "error", err)
	}
}

func (h *Handler) terminate(ew *eventWriter, frame errorFrame) {
	if err := ew.writeEvent(frame); err != nil {
		slog.Warn("client disconnected before error frame", "error", err)
	}
}
