package core

import "strings"

// Role identifies which side of the conversation produced an utterance.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the known conversation roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Display returns the role with its first letter capitalized, as rendered
// in assembled context ("User: ...", "Assistant: ...").
func (r Role) Display() string {
	s := string(r)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseRole normalizes raw input (trimmed, lowercased) into a Role.
// The second return value is false for anything outside the valid set.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", false
	}
	return r, true
}

// MemoryType distinguishes durable profile facts from conversational turns.
// Info memories are never evicted by the chat recency window.
type MemoryType string

const (
	TypeChat MemoryType = "chat"
	TypeInfo MemoryType = "info"
)

// Valid reports whether the memory type is one of the known types.
func (t MemoryType) Valid() bool {
	return t == TypeChat || t == TypeInfo
}
