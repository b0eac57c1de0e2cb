package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"autoclerk-backend/internal/middleware"
	"autoclerk-backend/internal/models"
)

type chatReplier interface {
	Reply(ctx context.Context, prompt string, history []models.ChatMessage) (string, error)
}

type ChatHandler struct {
	chatService  chatReplier
	maxBodyBytes int64
}

func NewChatHandler(chatService chatReplier, maxBodyBytes int64) *ChatHandler {
	return &ChatHandler{
		chatService:  chatService,
		maxBodyBytes: maxBodyBytes,
	}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var req models.ChatRequest
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(&req)
	if err == nil {
		// Exactly one JSON value per body.
		var extra json.RawMessage
		if err = dec.Decode(&extra); err == io.EOF {
			err = nil
		} else if err == nil {
			err = errors.New("unexpected data after JSON object")
		}
	} else if errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResp("request body is required"))
		return
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)))
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResp("invalid request body: "+err.Error()))
		return
	}

	if detail := validateChatRequest(&req); detail != "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorResp(detail))
		return
	}

	reply, err := h.chatService.Reply(r.Context(), *req.Prompt, req.History)
	if err != nil {
		log.Printf("chat: upstream call failed [request_id=%s]: %v", middleware.GetRequestID(r), err)
		writeJSON(w, http.StatusInternalServerError, errorResp(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply})
}

// validateChatRequest returns a 422 detail, or "" when the request is usable.
func validateChatRequest(req *models.ChatRequest) string {
	if req.Prompt == nil {
		return "prompt: field required"
	}
	if *req.Prompt == "" {
		return "prompt: must not be empty"
	}
	for i, msg := range req.History {
		if msg.Content == "" {
			return fmt.Sprintf("history[%d].content: must not be empty", i)
		}
	}
	return ""
}
