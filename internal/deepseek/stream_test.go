package deepseek

import (
	"bufio"
	"errors"
	"strings"
	"testing"

	"github.com/zhengjr9/promptyoo/internal/provider"
)

func collect(t *testing.T, input string) []provider.Chunk {
	t.Helper()
	scanner := bufio.NewScanner(strings.NewReader(input))
	var chunks []provider.Chunk
	for c := range ReadStream(scanner) {
		chunks = append(chunks, c)
	}
	return chunks
}

func TestReadStream_Deltas(t *testing.T) {
	input := "data: {\"choices\":[{\"index\":0,\"delta\":{\"content\":\"Hello\"}}]}\n\n" +
		"data: {\"choices\":[{\"index\":0,\"delta\":{\"content\":\" world\"}}]}\n\n" +
		"data: [DONE]\n\n"

	chunks := collect(t, input)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[0].Text != "Hello" || chunks[1].Text != " world" {
		t.Errorf("unexpected deltas: %v", chunks)
	}
}

func TestReadStream_SkipsEmptyDeltas(t *testing.T) {
	input := "data: {\"choices\":[{\"index\":0,\"delta\":{\"role\":\"assistant\"}}]}\n\n" +
		"data: {\"choices\":[{\"index\":0,\"delta\":{\"content\":\"x\"}}]}\n\n" +
		"data: {\"choices\":[{\"index\":0,\"delta\":{},\"finish_reason\":\"stop\"}]}\n\n" +
		"data: [DONE]\n\n"

	chunks := collect(t, input)
	if len(chunks) != 1 || chunks[0].Text != "x" {
		t.Fatalf("expected single non-empty delta, got %v", chunks)
	}
}

func TestReadStream_EndsOnDone(t *testing.T) {
	// Anything after [DONE] must be ignored.
	input := "data: [DONE]\n\n" +
		"data: {\"choices\":[{\"index\":0,\"delta\":{\"content\":\"late\"}}]}\n\n"

	chunks := collect(t, input)
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks after [DONE], got %v", chunks)
	}
}

func TestReadStream_MalformedChunk(t *testing.T) {
	input := "data: {not json}\n\n"

	chunks := collect(t, input)
	if len(chunks) != 1 || chunks[0].Err == nil {
		t.Fatalf("expected a single error chunk, got %v", chunks)
	}
	var perr *provider.Error
	if !errors.As(chunks[0].Err, &perr) || perr.Kind != provider.KindProtocol {
		t.Errorf("expected protocol error, got %v", chunks[0].Err)
	}
}

func TestReadStream_BodyEndsWithoutDone(t *testing.T) {
	// A body that just stops is a natural close, not an error.
	input := "data: {\"choices\":[{\"index\":0,\"delta\":{\"content\":\"x\"}}]}\n\n"

	chunks := collect(t, input)
	if len(chunks) != 1 || chunks[0].Err != nil {
		t.Fatalf("expected one clean chunk, got %v", chunks)
	}
}
