// File: internal/store/interface.go
package store

import (
	"context"

	"github.com/avasilyev/geminichat/internal/domain"
)

// UserStore handles identity records.
type UserStore interface {
	// FindUser returns the stored identity or ErrUserNotFound.
	FindUser(ctx context.Context, username string) (*domain.User, error)
	// CreateUser stores a new identity and provisions its empty chat
	// namespace. Returns ErrUserExists when the username is taken.
	CreateUser(ctx context.Context, user *domain.User) error
}

// ChatStore handles chat data operations for one user's namespace. Every
// method is atomic with respect to the others; chat_id lookups outside the
// user's namespace yield ErrChatNotFound.
type ChatStore interface {
	ListChats(ctx context.Context, username string) ([]domain.ChatSummary, error)
	CreateChat(ctx context.Context, username string) (*domain.Chat, error)
	GetChat(ctx context.Context, username, chatID string) (*domain.Chat, error)
	RenameChat(ctx context.Context, username, chatID, title string) error
	DeleteChat(ctx context.Context, username, chatID string) error
	// AppendMessage appends one message to the chat. A first user-role
	// message also retitles a chat still carrying the default title. The
	// returned chat is a snapshot taken after the append.
	AppendMessage(ctx context.Context, username, chatID string, msg domain.Message) (*domain.Chat, error)
}

// Store combines identity and chat storage.
type Store interface {
	UserStore
	ChatStore
}
