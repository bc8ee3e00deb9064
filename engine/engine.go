// Package engine runs one synchronous chat interaction: recall memories,
// enrich the prompt, invoke the model, and write both turns back.
package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/engramlabs/engram-go-sdk/core"
	"github.com/engramlabs/engram-go-sdk/memory"
	"github.com/engramlabs/engram-go-sdk/model"
)

// Engine drives the recall -> invoke -> remember pipeline. Each interaction
// is a single-threaded request/response cycle; the memory store and model
// calls are blocking I/O boundaries wrapped in explicit timeouts.
type Engine struct {
	memory       *memory.Manager
	model        model.Model
	systemPrompt string
	callTimeout  time.Duration
}

// Option configures the engine.
type Option func(*Engine)

// WithSystemPrompt overrides the default system instruction.
func WithSystemPrompt(prompt string) Option {
	return func(e *Engine) {
		e.systemPrompt = prompt
	}
}

// WithCallTimeout bounds each external call (recall, model invocation,
// write-back). Expiry surfaces as the corresponding error kind.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.callTimeout = d
	}
}

// New creates an engine over a memory manager and a language model.
func New(mem *memory.Manager, mdl model.Model, opts ...Option) *Engine {
	e := &Engine{
		memory:       mem,
		model:        mdl,
		systemPrompt: DefaultSystemPrompt,
		callTimeout:  60 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Respond runs one chat turn for ownerID.
//
// A recall failure aborts the interaction; an empty context is never
// silently substituted for a store error. A model failure writes nothing,
// so a failed call cannot leave an orphaned user turn in memory. After a
// successful model call both turns are written unconditionally; if a write
// fails the error is returned alongside the reply so the surface can still
// show it.
func (e *Engine) Respond(ctx context.Context, ownerID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: empty message", memory.ErrInvalidRecord)
	}

	memoryContext, err := e.recall(ctx, ownerID, message)
	if err != nil {
		return "", fmt.Errorf("recall memories: %w", err)
	}

	prompt := BuildPrompt(e.systemPrompt, memoryContext, message)
	log.Printf("[ENGINE] Invoking model for owner=%s (%d context chars)", ownerID, len(memoryContext))

	reply, err := e.invoke(ctx, prompt)
	if err != nil {
		// Nothing has been written yet, and nothing will be.
		return "", fmt.Errorf("invoke model: %w", err)
	}

	if err := e.remember(ctx, message, ownerID, core.RoleUser); err != nil {
		return reply, fmt.Errorf("store user turn: %w", err)
	}
	if err := e.remember(ctx, reply, ownerID, core.RoleAssistant); err != nil {
		return reply, fmt.Errorf("store assistant turn: %w", err)
	}
	return reply, nil
}

func (e *Engine) recall(ctx context.Context, ownerID, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()
	return e.memory.Recall(ctx, message, ownerID)
}

func (e *Engine) invoke(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()
	return e.model.Invoke(ctx, prompt)
}

func (e *Engine) remember(ctx context.Context, text, ownerID string, role core.Role) error {
	ctx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()
	return e.memory.Remember(ctx, text, ownerID, role, core.TypeChat)
}
