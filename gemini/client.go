// Package gemini wraps the generative-language API: one outbound call
// per invocation, no retries, no caching.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Default model names; overridable through configuration.
const (
	DefaultChatModel     = "gemini-2.0-flash"
	DefaultAnalysisModel = "gemini-pro"
)

// TextGenerator produces a single completion for a prompt. Handlers
// depend on this interface so tests can stub the upstream model.
type TextGenerator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

// Client is the genai-backed TextGenerator.
type Client struct {
	client *genai.Client
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("model returned no candidates (check safety filters)")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
