package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel_guide/internal/adapters/llm/openai"
	"travel_guide/internal/domain"
)

var msgs = []domain.ChatMessage{
	{Role: "system", Content: "catalog"},
	{Role: "user", Content: "timings of taj mahal"},
}

func TestClient_Complete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			MaxTokens int `json:"max_tokens"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if body.Model != openai.DefaultModel || len(body.Messages) != 2 || body.Messages[0].Role != "system" || body.MaxTokens != 500 {
			t.Errorf("unexpected body: %+v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": "Open 6 AM to 7 PM."}}},
		})
	}))
	defer ts.Close()

	cl, err := openai.New(ts.URL, "test-key", "", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, err := cl.Complete(context.Background(), msgs)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "Open 6 AM to 7 PM." {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestClient_RequiresKey(t *testing.T) {
	if _, err := openai.New("", "", "", 1); err == nil {
		t.Fatalf("expected error without key")
	}
}

func TestClient_Failures(t *testing.T) {
	cases := map[string]struct {
		handler http.HandlerFunc
		is      error
	}{
		"server error": {handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(500) }},
		"unauthorized": {handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(401) }, is: openai.ErrUnauthorized},
		"rate limited": {handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(429) }, is: openai.ErrRateLimited},
		"malformed":    {handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("{not json")) }, is: openai.ErrMalformed},
		"no choices":   {handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"choices":[]}`)) }, is: openai.ErrMalformed},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(tc.handler)
			defer ts.Close()
			cl, _ := openai.New(ts.URL, "k", "", 100)
			_, err := cl.Complete(context.Background(), msgs)
			if !errors.Is(err, domain.ErrServiceUnavailable) {
				t.Fatalf("expected ErrServiceUnavailable, got %v", err)
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Fatalf("expected %v, got %v", tc.is, err)
			}
		})
	}
}

func TestClient_ContextTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	cl, _ := openai.New(ts.URL, "k", "", 100)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := cl.Complete(ctx, msgs)
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("timeout not honoured")
	}
}
