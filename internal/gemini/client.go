package gemini

import (
	"context"

	"google.golang.org/genai"

	"github.com/zhengjr9/promptyoo/internal/provider"
)

// Client streams chat completions from the Gemini API via the official
// GenAI SDK. It is the alternate backend behind -provider gemini.
type Client struct {
	model string
}

// NewClient constructs a Client for the given model, e.g. "gemini-2.0-flash".
func NewClient(model string) *Client {
	return &Client{model: model}
}

// StreamCompletion sends the prompt as a single user turn and bridges the
// SDK's streaming iterator to a chunk channel. The SDK client is created
// per call because the credential arrives per request.
func (c *Client) StreamCompletion(ctx context.Context, apiKey, prompt string) (<-chan provider.Chunk, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, provider.NewError(provider.KindNetwork, "create gemini client", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	iter := client.Models.GenerateContentStream(ctx, c.model, contents, nil)

	ch := make(chan provider.Chunk, 16)
	go func() {
		defer close(ch)
		for result, err := range iter {
			if err != nil {
				ch <- provider.Chunk{Err: provider.NewError(provider.KindNetwork, "gemini stream", err)}
				return
			}
			if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
				continue
			}
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					ch <- provider.Chunk{Text: part.Text}
				}
			}
		}
	}()
	return ch, nil
}
