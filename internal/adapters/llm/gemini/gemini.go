// Package gemini adapts the Gemini API to domain.ModelClient.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"travel_guide/internal/adapters/observability"
	"travel_guide/internal/domain"
)

const DefaultModel = "gemini-2.5-flash"

// Generator is the slice of *genai.Models the client needs.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Client struct {
	gen   Generator
	model string
}

type Option func(*Client)

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return NewWithGenerator(gc.Models, opts...), nil
}

func NewWithGenerator(gen Generator, opts ...Option) *Client {
	c := &Client{gen: gen, model: DefaultModel}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete maps system messages to the system instruction and the rest to
// user contents. Failures wrap domain.ErrServiceUnavailable.
func (c *Client) Complete(ctx context.Context, msgs []domain.ChatMessage) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0.3)),
		MaxOutputTokens: 500,
	}
	var system []string
	var contents []*genai.Content
	for _, m := range msgs {
		if m.Role == "system" {
			system = append(system, m.Content)
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
	}
	if len(system) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), "")
	}

	start := time.Now()
	resp, err := c.gen.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		observability.ObserveExternal("gemini", "generate_content", 0, time.Since(start))
		return "", fmt.Errorf("%w: generate content: %v", domain.ErrServiceUnavailable, err)
	}
	observability.ObserveExternal("gemini", "generate_content", 200, time.Since(start))

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: gemini returned no candidates", domain.ErrServiceUnavailable)
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned no text", domain.ErrServiceUnavailable)
	}
	return text, nil
}
