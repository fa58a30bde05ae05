package stylist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopfront/internal/model"
)

func newTestGemini(t *testing.T, handler http.Handler) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewGemini(GeminiConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
	if err != nil {
		t.Fatalf("NewGemini() error = %v", err)
	}
	return g
}

func TestNewGeminiRequiresKey(t *testing.T) {
	if _, err := NewGemini(GeminiConfig{}); err == nil {
		t.Errorf("NewGemini() error = nil, want error without API key")
	}
}

func TestGenerate(t *testing.T) {
	g := newTestGemini(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, defaultGeminiModel+":generateContent") {
			t.Errorf("Path = %s, want generateContent on the default model", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %s, want test-key", r.URL.Query().Get("key"))
		}

		var req geminiRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "hello" {
			t.Errorf("request did not carry the prompt")
		}

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": "part one "},
					{"text": "part two"},
				}}},
			},
		})
	}))

	reply, err := g.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if reply != "part one part two" {
		t.Errorf("reply = %q, want parts concatenated", reply)
	}
}

func TestGenerateNoCandidates(t *testing.T) {
	g := newTestGemini(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))

	_, err := g.Generate(context.Background(), "hello")
	if err == nil {
		t.Fatalf("Generate() error = nil, want error on empty candidates")
	}
}

func TestGenerateErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"bad key", http.StatusForbidden, model.ErrUnauthorized},
		{"rate limited", http.StatusTooManyRequests, model.ErrRateLimited},
		{"overloaded", http.StatusServiceUnavailable, model.ErrUpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGemini(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"code": tt.status, "message": "nope", "status": "ERROR"},
				})
			}))

			_, err := g.Generate(context.Background(), "hello")
			if err == nil {
				t.Fatalf("Generate() error = nil, want error")
			}
			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error %v is not an APIError", err)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v does not match sentinel %v", err, tt.sentinel)
			}
		})
	}
}
