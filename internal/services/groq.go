package services

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"autoclerk-backend/internal/models"
)

// GroqClient talks to Groq's OpenAI-compatible chat completions endpoint.
type GroqClient struct {
	client *openai.Client
}

func NewGroqClient(apiKey, baseURL string) (*GroqClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq api key is empty")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &GroqClient{client: openai.NewClientWithConfig(config)}, nil
}

func (c *GroqClient) Complete(ctx context.Context, model string, messages []models.ChatMessage) (string, error) {
	openaiMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for i, msg := range messages {
		// go-openai omits an empty content field, which Groq rejects
		if msg.Content == "" {
			return "", fmt.Errorf("message %d (%s): %w", i, msg.Role, ErrEmptyContent)
		}
		openaiMessages = append(openaiMessages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: openaiMessages,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return resp.Choices[0].Message.Content, nil
}
