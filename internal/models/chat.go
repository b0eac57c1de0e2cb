package models

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"; history roles are not checked
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint.
// Prompt is a pointer so a missing field can be told apart from "".
type ChatRequest struct {
	Prompt  *string       `json:"prompt"`
	History []ChatMessage `json:"history"`
}

// ChatResponse is the reply from the upstream model.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
