// Package model defines the language model boundary: an opaque
// prompt-to-text call. All conversational continuity comes from the
// assembled memory context, never from state inside the model.
package model

import (
	"context"
	"errors"
)

// ErrModelUnavailable indicates the language model call failed. The chat
// engine treats this as atomic-or-nothing: neither side of the turn is
// written to memory.
var ErrModelUnavailable = errors.New("model: unavailable")

// Model is an opaque, stateless prompt-to-text function.
type Model interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}
