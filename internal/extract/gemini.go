package extract

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used for transaction extraction.
const DefaultModelName = "gemini-2.5-flash"

// GeminiGenerator is the genai-backed TextGenerator. It requests a JSON
// response MIME type so the model skips prose; the extractor still
// unwraps fenced output when it appears anyway.
type GeminiGenerator struct {
	Model string
}

// NewGeminiGenerator creates a generator for the given model name, falling
// back to DefaultModelName when empty.
func NewGeminiGenerator(model string) *GeminiGenerator {
	if model == "" {
		model = DefaultModelName
	}
	return &GeminiGenerator{Model: model}
}

// GenerateText implements TextGenerator with a single Gemini call.
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("GenerateText: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	resp, err := client.Models.GenerateContent(ctx, g.Model, contents, config)
	if err != nil {
		return "", fmt.Errorf("GenerateText: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("GenerateText: empty response from model")
	}
	return text, nil
}
