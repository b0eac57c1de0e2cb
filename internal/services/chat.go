package services

import (
	"context"
	"errors"
	"time"

	"autoclerk-backend/internal/models"
)

// ErrNoChoices is returned when the upstream answers without any completion.
var ErrNoChoices = errors.New("upstream returned no completion choices")

// ErrEmptyContent is returned before any upstream call when a message has no text.
var ErrEmptyContent = errors.New("message content must not be empty")

// Completer is a synchronous chat-completion call to an upstream provider.
type Completer interface {
	Complete(ctx context.Context, model string, messages []models.ChatMessage) (string, error)
}

type ChatService struct {
	completer Completer
	persona   string
	model     string
	timeout   time.Duration
}

func NewChatService(completer Completer, persona, model string, timeout time.Duration) *ChatService {
	return &ChatService{
		completer: completer,
		persona:   persona,
		model:     model,
		timeout:   timeout,
	}
}

// BuildMessages returns [system(persona)] ++ history ++ [user(prompt)].
// History entries are copied as-is, in order.
func BuildMessages(persona string, history []models.ChatMessage, prompt string) []models.ChatMessage {
	messages := make([]models.ChatMessage, 0, len(history)+2)
	messages = append(messages, models.ChatMessage{Role: models.RoleSystem, Content: persona})
	messages = append(messages, history...)
	messages = append(messages, models.ChatMessage{Role: models.RoleUser, Content: prompt})
	return messages
}

// Reply sends one chat turn upstream and returns the model's text.
// Upstream errors are returned unchanged.
func (s *ChatService) Reply(ctx context.Context, prompt string, history []models.ChatMessage) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	return s.completer.Complete(ctx, s.model, BuildMessages(s.persona, history, prompt))
}
