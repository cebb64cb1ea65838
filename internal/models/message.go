package models

import "time"

// Role represents the role of a message participant.
type Role string

const (
	// RoleUser represents a message typed by the site visitor.
	RoleUser Role = "user"
	// RoleAssistant represents a reply generated by the assistant. While a reply is
	// streaming, its message is the only mutable entry in the conversation.
	RoleAssistant Role = "assistant"
	// RoleSystem represents the system instruction. It is assembled on the server and
	// must never be accepted from a client.
	RoleSystem Role = "system"
	// RoleTyping represents the transient typing indicator shown while awaiting the
	// first fragment of a reply. It exists only in the client's conversation and is
	// never sent upstream.
	RoleTyping Role = "typing"
)

// Message represents an individual turn within a conversation. The ID is required for
// typing placeholders and in-progress assistant entries so they can be located and
// replaced without relying on array position; it never travels on the wire.
type Message struct {
	ID        string    `json:"-"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"-"`
}

// SanitizeHistory returns the subset of messages that may be forwarded to the upstream
// provider, dropping typing placeholders and any client-supplied system rows. The
// relative order of the remaining messages is preserved.
func SanitizeHistory(messages []Message) []Message {
	sanitized := make([]Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == RoleTyping || msg.Role == RoleSystem {
			continue
		}
		sanitized = append(sanitized, msg)
	}
	return sanitized
}
