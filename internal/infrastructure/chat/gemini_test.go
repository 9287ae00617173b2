package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

// fakeGemini answers streamGenerateContent with one SSE chunk per reply part.
func fakeGemini(t *testing.T, status int, parts ...string) (*GeminiProvider, <-chan map[string]any) {
	t.Helper()
	requests := make(chan map[string]any, 8)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":streamGenerateContent") {
			http.NotFound(w, r)
			return
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		requests <- body

		if status != http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			fmt.Fprintf(w, `{"error":{"code":%d,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`, status)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, p := range parts {
			chunk, _ := json.Marshal(map[string]any{
				"candidates": []any{map[string]any{
					"content": map[string]any{"role": "model", "parts": []any{map[string]any{"text": p}}},
				}},
			})
			fmt.Fprintf(w, "data: %s\n\n", chunk)
		}
	}))
	t.Cleanup(srv.Close)

	p, err := newGeminiProvider(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	}, "")
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	return p, requests
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(context.Background(), "", ""); err == nil {
		t.Fatalf("expected an error without an API key")
	}
}

func TestGemini_StreamsFragments(t *testing.T) {
	p, requests := fakeGemini(t, http.StatusOK, "안녕", "하세요")
	if p.model != DefaultModel {
		t.Fatalf("expected default model, got %q", p.model)
	}

	conv, err := p.NewConversation(context.Background(), "You are Lumi.")
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	got, err := collect(t, conv)
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if strings.Join(got, "|") != "안녕|하세요" {
		t.Fatalf("unexpected fragments: %v", got)
	}

	req := <-requests
	if _, ok := req["systemInstruction"]; !ok {
		t.Fatalf("system prompt was not sent: %v", req)
	}
}

func TestGemini_StreamError(t *testing.T) {
	p, _ := fakeGemini(t, http.StatusTooManyRequests)

	conv, err := p.NewConversation(context.Background(), "")
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if _, err := collect(t, conv); err == nil || !strings.Contains(err.Error(), "gemini: stream") {
		t.Fatalf("expected a wrapped stream error, got %v", err)
	}
}
