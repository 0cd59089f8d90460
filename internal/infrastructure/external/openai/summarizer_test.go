package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", "gpt-4o-mini", 400, 0.2,
		WithBaseURL(server.URL), WithMaxRetries(0))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini", 400, 0.2); err == nil {
		t.Fatal("expected error for empty api key")
	}
	if _, err := NewClient("key", "", 400, 0.2); err == nil {
		t.Fatal("expected error for empty model")
	}
}

func TestSummarizeSendsTranscriptAndReturnsContent(t *testing.T) {
	var captured struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		MaxTokens int64 `json:"max_tokens"`
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "- caller wants a refund"},
				"finish_reason": "stop"
			}]
		}`))
	})

	summary, err := client.Summarize(context.Background(), "Customer wants a refund.")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary != "- caller wants a refund" {
		t.Fatalf("unexpected summary: %q", summary)
	}

	if captured.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %q", captured.Model)
	}
	if captured.MaxTokens != 400 {
		t.Fatalf("unexpected max_tokens: %d", captured.MaxTokens)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" {
		t.Fatalf("expected system message first, got %q", captured.Messages[0].Role)
	}
	if !strings.Contains(captured.Messages[1].Content, "Customer wants a refund.") {
		t.Fatalf("transcript missing from prompt: %q", captured.Messages[1].Content)
	}
}

func TestSummarizeReportsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": {"message": "overloaded", "type": "server_error"}}`))
	})

	if _, err := client.Summarize(context.Background(), "hello"); err == nil {
		t.Fatal("expected error from failing API")
	}
}

func TestSummarizeRejectsEmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`))
	})

	if _, err := client.Summarize(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
