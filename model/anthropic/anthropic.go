// Package anthropic implements model.Model over the Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/engramlabs/engram-go-sdk/model"
)

// Config configures the Anthropic model.
type Config struct {
	// APIKey authenticates against the Anthropic API.
	APIKey string

	// Model is the model name. Default: claude-sonnet-4-20250514.
	Model string

	// MaxTokens caps the response length. Default: 1024.
	MaxTokens int64
}

// Model calls the Anthropic Messages API with a single user message.
// The enriched prompt carries the system instruction and memory context
// inline, so no separate system block is sent.
type Model struct {
	client anthropic.Client
	model  string
	max    int64
}

// New creates an Anthropic-backed model.
func New(cfg Config) (*Model, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("APIKey is required")
	}
	if cfg.Model == "" {
		cfg.Model = "claude-sonnet-4-20250514"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}
	return &Model{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  cfg.Model,
		max:    cfg.MaxTokens,
	}, nil
}

// Invoke sends the prompt and returns the concatenated text response.
func (m *Model) Invoke(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(m.model),
		MaxTokens: m.max,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrModelUnavailable, err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("%w: empty response", model.ErrModelUnavailable)
	}
	return text, nil
}
