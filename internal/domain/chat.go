// File: internal/domain/chat.go
package domain

import "time"

// DefaultChatTitle is the placeholder title a chat carries until it is
// renamed, either explicitly or automatically from its first message.
const DefaultChatTitle = "New Chat"

// titleMaxLen is the cutoff for titles derived from a first message.
const titleMaxLen = 50

// Chat is a single conversation thread, owned by exactly one user.
type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Messages  []Message `json:"messages"`
}

// ChatSummary is the listing view of a chat: everything but the messages.
type ChatSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary returns the listing view of the chat.
func (c *Chat) Summary() ChatSummary {
	return ChatSummary{ID: c.ID, Title: c.Title, CreatedAt: c.CreatedAt}
}

// DeriveTitle builds a chat title from the first user message: the first
// 50 characters, with "..." appended when the message was longer.
func DeriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= titleMaxLen {
		return text
	}
	return string(runes[:titleMaxLen]) + "..."
}
