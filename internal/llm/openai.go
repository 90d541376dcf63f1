package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// extractionTemperature keeps completions near-deterministic.
const extractionTemperature = 0.1

// extractionMaxTokens bounds the completion size.
const extractionMaxTokens = 2000

// OpenAIClient implements Completer using the OpenAI API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI completion client.
func NewOpenAIClient(apiKey string, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Name returns the provider's registry name.
func (c *OpenAIClient) Name() string { return "openai" }

// Complete sends a system message and prompt to the LLM and returns the
// response text.
func (c *OpenAIClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return resp.Choices[0].Message.Content, nil
}
