// Package openai talks to an OpenAI-compatible chat completions endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"travel_guide/internal/adapters/observability"
	"travel_guide/internal/domain"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

type Client struct {
	base        string
	hc          *http.Client
	key         string
	model       string
	rl          *rate.Limiter
	temperature float64
	maxTokens   int
}

func New(base, key, model string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if base == "" {
		base = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:        strings.TrimRight(base, "/"),
		hc:          &http.Client{Timeout: 30 * time.Second},
		key:         key,
		model:       model,
		rl:          rate.NewLimiter(rate.Limit(rps), rps),
		temperature: 0.3,
		maxTokens:   500,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

var (
	ErrUnauthorized = errors.New("openai: unauthorized")
	ErrRateLimited  = errors.New("openai: rate limited")
	ErrMalformed    = errors.New("openai: malformed response")
)

// Complete sends one chat completion and returns the first choice's text.
// Every failure wraps domain.ErrServiceUnavailable. No retries: callers
// start a new request to try again.
func (c *Client) Complete(ctx context.Context, msgs []domain.ChatMessage) (string, error) {
	// client-side rate limiting, bounded by ctx
	if err := c.rl.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}

	body := chatRequest{Model: c.model, Temperature: c.temperature, MaxTokens: c.maxTokens}
	for _, m := range msgs {
		body.Messages = append(body.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "travel-guide/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("openai", "chat_completions", 0, time.Since(start))
		// network error or context canceled
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, ctx.Err())
		}
		return "", fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("openai", "chat_completions", resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		var out chatResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return "", fmt.Errorf("%w: %w: %v", domain.ErrServiceUnavailable, ErrMalformed, err)
		}
		if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
			return "", fmt.Errorf("%w: %w: no choices", domain.ErrServiceUnavailable, ErrMalformed)
		}
		return out.Choices[0].Message.Content, nil

	case http.StatusUnauthorized, http.StatusForbidden:
		return "", fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, ErrUnauthorized)

	case http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, ErrRateLimited)

	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: bad status %d: %s", domain.ErrServiceUnavailable, resp.StatusCode, strings.TrimSpace(string(b)))
	}
}
