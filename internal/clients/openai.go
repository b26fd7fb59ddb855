package clients

import (
	"context"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

// OpenAIClient wraps the OpenAI chat completion API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a client for the OpenAI API.
func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is empty")
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Complete sends a chat completion request and returns the raw reply.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		return "", errors.Wrap(err, "OpenAI API call failed")
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("OpenAI API returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// Ping lists models to verify the API key works.
func (c *OpenAIClient) Ping(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return errors.Wrap(err, "OpenAI API is not reachable")
	}
	return nil
}

// Provider identifies the backend.
func (c *OpenAIClient) Provider() domain.Provider {
	return domain.ProviderOpenAI
}
