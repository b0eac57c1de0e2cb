package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"autoclerk-backend/internal/models"
)

const geminiRoleModel = "model"

// GeminiClient maps the relay's role/content messages onto a Gemini chat
// session: system messages become the system instruction, the last message
// is sent, everything in between seeds the session history.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) Complete(ctx context.Context, model string, messages []models.ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages to send")
	}

	system, history, last := splitForGemini(messages)

	gm := c.client.GenerativeModel(model)
	if system != "" {
		gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	cs := gm.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", err
	}

	return firstCandidateText(resp)
}

func firstCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoChoices
	}
	return extractText(resp.Candidates[0]), nil
}

// splitForGemini separates system text, prior turns and the final prompt.
func splitForGemini(messages []models.ChatMessage) (string, []*genai.Content, string) {
	var systemParts []string
	var history []*genai.Content

	for _, msg := range messages[:len(messages)-1] {
		switch msg.Role {
		case models.RoleSystem:
			systemParts = append(systemParts, msg.Content)
		case models.RoleAssistant, geminiRoleModel:
			history = append(history, &genai.Content{Role: geminiRoleModel, Parts: []genai.Part{genai.Text(msg.Content)}})
		default:
			history = append(history, &genai.Content{Role: models.RoleUser, Parts: []genai.Part{genai.Text(msg.Content)}})
		}
	}

	return strings.Join(systemParts, "\n\n"), history, messages[len(messages)-1].Content
}

func extractText(cand *genai.Candidate) string {
	if cand == nil || cand.Content == nil {
		return ""
	}

	var text strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String()
}
