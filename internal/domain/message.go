// File: internal/domain/message.go
package domain

import "time"

// Message roles. The set is closed: every stored message is one of the two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single utterance within a chat. Messages are immutable once
// appended; a chat's message list only ever grows.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
