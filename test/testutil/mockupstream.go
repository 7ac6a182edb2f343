package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"
)

// MockUpstream is an httptest.Server that simulates an OpenAI-compatible
// /chat/completions endpoint.
type MockUpstream struct {
	Server *httptest.Server

	// Chunks are the content deltas streamed back, in order. An empty
	// slice produces a stream that closes with [DONE] and no content.
	Chunks []string

	// Status, when non-zero and not 200, is returned immediately with
	// ErrorMessage as the body instead of a stream.
	Status       int
	ErrorMessage string

	// LastRequest captures the most recent request body parsed.
	LastRequest map[string]any
}

// NewMockUpstream creates and starts a mock upstream streaming the given chunks.
func NewMockUpstream(chunks ...string) *MockUpstream {
	m := &MockUpstream{Chunks: chunks}
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	return m
}

// Close shuts down the mock server.
func (m *MockUpstream) Close() {
	m.Server.Close()
}

// URL returns the base URL of the mock server.
func (m *MockUpstream) URL() string {
	return m.Server.URL
}

func (m *MockUpstream) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/chat/completions" || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	m.LastRequest = body

	if m.Status != 0 && m.Status != http.StatusOK {
		errBody := map[string]any{
			"error": map[string]any{
				"message": m.ErrorMessage,
				"type":    "invalid_request_error",
			},
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(m.Status)
		_ = json.NewEncoder(w).Encode(errBody)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	flusher, hasFlusher := w.(http.Flusher)

	for _, content := range m.Chunks {
		chunk := map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion.chunk",
			"created": time.Now().Unix(),
			"model":   "deepseek-chat",
			"choices": []map[string]any{
				{
					"index": 0,
					"delta": map[string]any{"content": content},
				},
			},
		}
		data, _ := json.Marshal(chunk)
		fmt.Fprintf(w, "data: %s\n\n", data)
		if hasFlusher {
			flusher.Flush()
		}
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	if hasFlusher {
		flusher.Flush()
	}
}
