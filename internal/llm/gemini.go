package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient implements Completer using the Gemini API.
type GeminiClient struct {
	apiKey string
	model  string
}

// NewGeminiClient creates a new Gemini completion client.
func NewGeminiClient(apiKey string, model string) *GeminiClient {
	return &GeminiClient{
		apiKey: apiKey,
		model:  model,
	}
}

// Name returns the provider's registry name.
func (c *GeminiClient) Name() string { return "gemini" }

// Complete sends a system message and prompt to the LLM and returns the
// response text.
func (c *GeminiClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("gemini client init failed: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](extractionTemperature),
			MaxOutputTokens:   extractionMaxTokens,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		})
	if err != nil {
		return "", fmt.Errorf("gemini completion failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}
	return resp.Text(), nil
}
