package relay

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Wire format of the /api/optimize event stream. Every frame is a single
// SSE event: "data: <json>\n\n", flushed as soon as it is written.
//
// A request produces zero or more content frames followed by exactly one
// terminal frame (done or error). Content frames carry only the newly
// produced increment, never the cumulative text; the client concatenates.

type contentFrame struct {
	Content string `json:"content"`
}

type doneFrame struct {
	Done bool `json:"done"`
}

type errorFrame struct {
	Error            string `json:"error"`
	Details          string `json:"details,omitempty"`
	UseTemplate      bool   `json:"useTemplate,omitempty"`
	FallbackTemplate string `json:"fallbackTemplate,omitempty"`
}

// eventWriter writes SSE frames, flushing after every write so the client
// receives them incrementally. Flush is a no-op when the underlying writer
// does not implement http.Flusher.
type eventWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newEventWriter(w http.ResponseWriter) *eventWriter {
	ew := &eventWriter{w: w}
	if f, ok := w.(http.Flusher); ok {
		ew.flusher = f
	}
	return ew
}

// open commits the response to streaming: headers are sent before the
// upstream call resolves so the connection is held open.
func (ew *eventWriter) open() {
	h := ew.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	ew.w.WriteHeader(http.StatusOK)
	ew.flush()
}

// writeEvent encodes one frame. A write error means the client went away;
// the caller must stop without attempting a terminal frame.
func (ew *eventWriter) writeEvent(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	if _, err := fmt.Fprintf(ew.w, "data: %s\n\n", data); err != nil {
		return err
	}
	ew.flush()
	return nil
}

func (ew *eventWriter) flush() {
	if ew.flusher != nil {
		ew.flusher.Flush()
	}
}
