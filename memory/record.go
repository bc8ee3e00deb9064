package memory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/engramlabs/engram-go-sdk/core"
)

// Record is the unit of stored memory: one utterance with its embedding
// and payload. Records are immutable once stored.
type Record struct {
	// ID is assigned at write time and never changes.
	ID string

	// Vector is the embedding of Text, length equal to the collection
	// dimension. Produced once, at write time.
	Vector []float32

	// Text is the original utterance, non-empty after trimming.
	Text string

	// OwnerID identifies the conversation partner this memory belongs to.
	OwnerID string

	// Role is the side of the conversation that produced Text.
	Role core.Role

	// Timestamp is when the record was created. Used only for ordering.
	Timestamp time.Time

	// Type defaults to chat. Info records are exempt from the chat
	// recency window during recall.
	Type core.MemoryType
}

// NewRecord builds a record from a raw utterance, assigning a fresh ID and
// the current time. The embedding is set separately by the Manager.
func NewRecord(text, ownerID string, role core.Role, memType core.MemoryType) *Record {
	if memType == "" {
		memType = core.TypeChat
	}
	return &Record{
		ID:        uuid.New().String(),
		Text:      strings.TrimSpace(text),
		OwnerID:   strings.TrimSpace(ownerID),
		Role:      role,
		Timestamp: time.Now(),
		Type:      memType,
	}
}

// Validate checks the record invariants shared by every stored record.
// The vector dimension is checked by the store, which owns the collection
// dimension.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidRecord)
	}
	if strings.TrimSpace(r.OwnerID) == "" {
		return fmt.Errorf("%w: empty owner id", ErrInvalidRecord)
	}
	if !r.Role.Valid() {
		return fmt.Errorf("%w: role %q", ErrInvalidRecord, r.Role)
	}
	if !r.Type.Valid() {
		return fmt.Errorf("%w: memory type %q", ErrInvalidRecord, r.Type)
	}
	return nil
}

// Line renders the record as one context line. Chat turns render as
// "<Role>: <text>"; info records render as "User Info: <text>".
func (r *Record) Line() string {
	if r.Type == core.TypeInfo {
		return "User Info: " + r.Text
	}
	return r.Role.Display() + ": " + r.Text
}

// dedupKey identifies a (role, text) pair for duplicate elimination.
func (r *Record) dedupKey() string {
	return string(r.Role) + ":" + r.Text
}
