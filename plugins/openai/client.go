// Package openai is the OpenAI LLM client, selectable as an alternative to
// Gemini.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/voyago/tripdesk/plugins"
)

// Client handles OpenAI chat completion requests
type Client struct {
	Model  string
	client openai.Client
}

var _ plugins.LLMClient = (*Client)(nil)

// NewClient creates a new OpenAI API client
func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = "gpt-4o"
	}

	return &Client{
		Model:  model,
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// GenerateContent sends a prompt as a single-turn chat completion and
// returns the response text
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(c.Model),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return completion.Choices[0].Message.Content, nil
}
