// Package mock provides a canned-reply model for tests.
package mock

import (
	"context"

	"github.com/engramlabs/engram-go-sdk/model"
)

// Model replies with a fixed string, or fails when Err is set. It records
// every prompt it receives so tests can assert on enrichment.
type Model struct {
	Reply   string
	Err     error
	Prompts []string
}

// New creates a mock model with a fixed reply.
func New(reply string) *Model {
	return &Model{Reply: reply}
}

// Invoke returns the canned reply or the configured error.
func (m *Model) Invoke(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

var _ model.Model = (*Model)(nil)
