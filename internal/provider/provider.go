package provider

import "context"

// Chunk is one element of a completion stream. Text carries the newly
// produced increment; Err is set instead when the stream reader itself
// fails mid-stream (the channel is closed right after).
type Chunk struct {
	Text string
	Err  error
}

// Client produces a streaming completion for a single prompt.
//
// StreamCompletion returns an error for failures detected before any
// content arrives (connection refused, non-2xx status, rejected
// credential). Once a channel is returned it is single-consumption and
// closed by the producer when the upstream stream ends.
type Client interface {
	StreamCompletion(ctx context.Context, apiKey, prompt string) (<-chan Chunk, error)
}
