package deepseek

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/zhengjr9/promptyoo/internal/provider"
)

// Client streams chat completions from an OpenAI-compatible endpoint.
type Client struct {
	// completionsURL is the full URL of the chat completions endpoint,
	// e.g. "https://api.deepseek.com/chat/completions". If the configured
	// base does not already end with "/chat/completions" the suffix is
	// appended automatically so that callers can pass either a base host
	// or the full URL.
	completionsURL string
	model          string
	// streamTransport is used by streaming requests (no client timeout;
	// the request context carries the deadline).
	streamTransport http.RoundTripper
}

// NewClient constructs a Client with the given base URL (or full endpoint
// URL), model name, and optional proxy URL. proxyURL may be empty to use
// the default environment proxy.
func NewClient(baseURL, model, proxyURL string) *Client {
	completionsURL := strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(completionsURL, "/chat/completions") {
		completionsURL += "/chat/completions"
	}

	transport := &http.Transport{}
	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}

	return &Client{
		completionsURL:  completionsURL,
		model:           model,
		streamTransport: transport,
	}
}

// StreamCompletion sends a streaming chat completions request with the
// prompt as the sole user message and returns a channel of content deltas.
// The HTTP response body is closed when the channel is drained.
func (c *Client) StreamCompletion(ctx context.Context, apiKey, prompt string) (<-chan provider.Chunk, error) {
	body, err := json.Marshal(&ChatRequest{
		Model:    c.model,
		Messages: []Message{{Role: "user", Content: prompt}},
		Stream:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.completionsURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Accept", "text/event-stream")

	streamClient := &http.Client{Transport: c.streamTransport}
	resp, err := streamClient.Do(httpReq)
	if err != nil {
		return nil, provider.NewError(provider.KindNetwork, "upstream request", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, statusError(resp.StatusCode, raw)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	ch := make(chan provider.Chunk, 16)
	go func() {
		defer resp.Body.Close()
		inner := ReadStream(scanner)
		for chunk := range inner {
			ch <- chunk
		}
		close(ch)
	}()
	return ch, nil
}

// statusError maps a non-2xx upstream response to a classified error.
// 401 and 403 are credential rejections; the upstream's own error message
// is preserved so that callers matching on it keep working.
func statusError(status int, raw []byte) *provider.Error {
	msg := strings.TrimSpace(string(raw))
	var parsed errorResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error.Message != "" {
		msg = parsed.Error.Message
	}

	kind := provider.KindNetwork
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		kind = provider.KindAuth
		if msg == "" {
			msg = "invalid API key"
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return provider.NewError(kind, fmt.Sprintf("upstream %d: %s", status, msg), nil)
}
