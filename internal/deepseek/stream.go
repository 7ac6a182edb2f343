package deepseek

import (
	"bufio"
	"encoding/json"
	"strings"

	"github.com/zhengjr9/promptyoo/internal/provider"
)

// ReadStream reads SSE lines from a scanner and sends content deltas to the
// returned channel. The channel is closed when the upstream signals [DONE],
// the body ends, or an error occurs.
func ReadStream(scanner *bufio.Scanner) <-chan provider.Chunk {
	ch := make(chan provider.Chunk, 16)
	go func() {
		defer close(ch)
		var dataLine string
		for scanner.Scan() {
			line := scanner.Text()
			if rest, ok := strings.CutPrefix(line, "data:"); ok {
				dataLine = strings.TrimSpace(rest)
			} else if line == "" && dataLine != "" {
				// End of one SSE event block
				if dataLine == "[DONE]" {
					return
				}
				var chunk StreamChunk
				if err := json.Unmarshal([]byte(dataLine), &chunk); err != nil {
					ch <- provider.Chunk{Err: provider.NewError(provider.KindProtocol, "malformed stream chunk", err)}
					return
				}
				if len(chunk.Choices) > 0 {
					if text := chunk.Choices[0].Delta.Content; text != "" {
						ch <- provider.Chunk{Text: text}
					}
				}
				dataLine = ""
			}
		}
		if err := scanner.Err(); err != nil {
			ch <- provider.Chunk{Err: provider.NewError(provider.KindNetwork, "read stream", err)}
		}
	}()
	return ch
}
