package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIClient_Complete(t *testing.T) {
	var got chatRequest
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"{\"title\":\"T\"}"}}]}`)
	}))
	defer srv.Close()

	client := NewOpenAIClient(&OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1/", Temperature: 0.4})
	content, err := client.Complete(context.Background(), "sys", "usr")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if content != `{"title":"T"}` {
		t.Errorf("content = %q", content)
	}
	if auth != "Bearer sk-test" || path != "/v1/chat/completions" {
		t.Errorf("unexpected request auth=%q path=%q", auth, path)
	}
	if got.Model != "gpt-4o-mini" || got.Temperature != 0.4 {
		t.Errorf("unexpected request body: %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "usr" {
		t.Errorf("unexpected messages: %+v", got.Messages)
	}
}

func TestOpenAIClient_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantContent string
		wantErr     string
	}{
		{
			name:    "api error",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"invalid api key","type":"auth"}}`,
			wantErr: "invalid api key",
		},
		{
			name:    "plain error body",
			status:  http.StatusBadGateway,
			body:    `upstream down`,
			wantErr: "HTTP 502",
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"choices":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if strings.HasPrefix(tt.body, "{") {
					w.Header().Set("Content-Type", "application/json")
				} else {
					w.Header().Set("Content-Type", "text/plain")
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			content, err := NewOpenAIClient(&OpenAIConfig{APIKey: "k", BaseURL: srv.URL}).
				Complete(context.Background(), "s", "u")
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			} else if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
			if content != tt.wantContent {
				t.Errorf("content = %q, want %q", content, tt.wantContent)
			}
		})
	}
}
