package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"autoclerk-backend/internal/models"
)

type stubChatService struct {
	reply   string
	err     error
	calls   int
	prompt  string
	history []models.ChatMessage
}

func (s *stubChatService) Reply(ctx context.Context, prompt string, history []models.ChatMessage) (string, error) {
	s.calls++
	s.prompt = prompt
	s.history = history
	return s.reply, s.err
}

func postChat(h *ChatHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Chat(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestChatHandler_Success(t *testing.T) {
	svc := &stubChatService{reply: "4"}
	h := NewChatHandler(svc, 1<<20)

	rr := postChat(h, `{"prompt": "What is 2+2?", "history": []}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", ct)
	}

	var resp models.ChatResponse
	decodeBody(t, rr, &resp)
	if resp.Response != "4" {
		t.Errorf("Expected response %q, got %q", "4", resp.Response)
	}
	if svc.prompt != "What is 2+2?" {
		t.Errorf("Expected prompt forwarded, got %q", svc.prompt)
	}
}

func TestChatHandler_ForwardsHistoryUnchanged(t *testing.T) {
	svc := &stubChatService{reply: "ok"}
	h := NewChatHandler(svc, 1<<20)

	rr := postChat(h, `{"prompt":"Hello","history":[
		{"role":"assistant","content":"Hello!"},
		{"role":"user","content":"Hi"},
		{"role":"critic","content":"hmm"}]}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	want := []models.ChatMessage{
		{Role: "assistant", Content: "Hello!"},
		{Role: "user", Content: "Hi"},
		{Role: "critic", Content: "hmm"},
	}
	if len(svc.history) != len(want) {
		t.Fatalf("Expected %d history entries, got %d", len(want), len(svc.history))
	}
	for i := range want {
		if svc.history[i] != want[i] {
			t.Errorf("history %d: expected %+v, got %+v", i, want[i], svc.history[i])
		}
	}
}

func TestChatHandler_HistoryOptional(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"absent", `{"prompt":"Hi"}`},
		{"null", `{"prompt":"Hi","history":null}`},
		{"trailing whitespace", "{\"prompt\":\"Hi\"}\n  \n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubChatService{reply: "hello"}
			rr := postChat(NewChatHandler(svc, 1<<20), tc.body)

			if rr.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
			}
			if len(svc.history) != 0 {
				t.Errorf("Expected empty history, got %+v", svc.history)
			}
		})
	}
}

func TestChatHandler_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantDetail string
	}{
		{"missing prompt", `{"history":[]}`, "prompt: field required"},
		{"empty body", ``, "request body is required"},
		{"prompt wrong type", `{"prompt": 42}`, "invalid request body"},
		{"history wrong type", `{"prompt":"Hi","history":"nope"}`, "invalid request body"},
		{"history entry wrong type", `{"prompt":"Hi","history":[{"role":1,"content":"x"}]}`, "invalid request body"},
		{"malformed json", `{"prompt":`, "invalid request body"},
		{"trailing garbage", `{"prompt":"x"} garbage`, "invalid request body"},
		{"second object", `{"prompt":"x"}{"prompt":"y"}`, "unexpected data after JSON object"},
		{"empty prompt", `{"prompt":""}`, "prompt: must not be empty"},
		{"empty history content", `{"prompt":"Hi","history":[{"role":"user","content":"a"},{"role":"assistant","content":""}]}`, "history[1].content: must not be empty"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubChatService{reply: "unused"}
			rr := postChat(NewChatHandler(svc, 1<<20), tc.body)

			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
			}

			var resp models.ErrorResponse
			decodeBody(t, rr, &resp)
			if !strings.Contains(resp.Detail, tc.wantDetail) {
				t.Errorf("Expected detail containing %q, got %q", tc.wantDetail, resp.Detail)
			}
			if svc.calls != 0 {
				t.Fatalf("upstream should not be called for invalid input")
			}
		})
	}
}

func TestChatHandler_BodyTooLarge(t *testing.T) {
	svc := &stubChatService{reply: "unused"}
	h := NewChatHandler(svc, 32)

	rr := postChat(h, `{"prompt":"`+strings.Repeat("a", 100)+`"}`)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status %d, got %d", http.StatusRequestEntityTooLarge, rr.Code)
	}
	if svc.calls != 0 {
		t.Fatalf("upstream should not be called for oversized body")
	}
}

func TestChatHandler_UpstreamFailure(t *testing.T) {
	svc := &stubChatService{err: errors.New("Error code: 401 - Invalid API Key")}
	h := NewChatHandler(svc, 1<<20)

	rr := postChat(h, `{"prompt":"Hello"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}

	var resp models.ErrorResponse
	decodeBody(t, rr, &resp)
	if resp.Detail != "Error code: 401 - Invalid API Key" {
		t.Errorf("Expected upstream error as detail, got %q", resp.Detail)
	}

	// Failures are per-request; the next call goes through.
	svc.err = nil
	svc.reply = "recovered"
	rr = postChat(h, `{"prompt":"Hello again"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d after failure, got %d", http.StatusOK, rr.Code)
	}
}
