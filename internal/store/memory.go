// File: internal/store/memory.go
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avasilyev/geminichat/internal/domain"
)

// Memory is the in-process implementation of Store: a username → chat_id →
// chat mapping plus an identity map, guarded by a single RWMutex so each
// operation is atomic. Nothing here survives a restart.
//
// Snapshots are copied in and out; callers never share slices or structs
// with the store, so no lock is held while a caller works with a result.
type Memory struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	chats map[string]map[string]*domain.Chat // username -> chat_id -> chat
	now   func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users: make(map[string]*domain.User),
		chats: make(map[string]map[string]*domain.Chat),
		now:   time.Now,
	}
}

func (m *Memory) FindUser(_ context.Context, username string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *Memory) CreateUser(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Username]; ok {
		return ErrUserExists
	}
	cp := *user
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = m.now()
	}
	m.users[cp.Username] = &cp
	m.chats[cp.Username] = make(map[string]*domain.Chat)
	return nil
}

func (m *Memory) ListChats(_ context.Context, username string) ([]domain.ChatSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summaries := make([]domain.ChatSummary, 0, len(m.chats[username]))
	for _, c := range m.chats[username] {
		summaries = append(summaries, c.Summary())
	}
	// Newest first; id breaks ties so the order is stable.
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
		}
		return summaries[i].ID > summaries[j].ID
	})
	return summaries, nil
}

func (m *Memory) CreateChat(_ context.Context, username string) (*domain.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns := m.chats[username]
	if ns == nil {
		ns = make(map[string]*domain.Chat)
		m.chats[username] = ns
	}

	chat := &domain.Chat{
		ID:        uuid.NewString(),
		Title:     domain.DefaultChatTitle,
		CreatedAt: m.now(),
		Messages:  []domain.Message{},
	}
	ns[chat.ID] = chat
	return copyChat(chat), nil
}

func (m *Memory) GetChat(_ context.Context, username, chatID string) (*domain.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chat, ok := m.chats[username][chatID]
	if !ok {
		return nil, ErrChatNotFound
	}
	return copyChat(chat), nil
}

func (m *Memory) RenameChat(_ context.Context, username, chatID, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	chat, ok := m.chats[username][chatID]
	if !ok {
		return ErrChatNotFound
	}
	chat.Title = title
	return nil
}

func (m *Memory) DeleteChat(_ context.Context, username, chatID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.chats[username][chatID]; !ok {
		return ErrChatNotFound
	}
	delete(m.chats[username], chatID)
	return nil
}

func (m *Memory) AppendMessage(_ context.Context, username, chatID string, msg domain.Message) (*domain.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	chat, ok := m.chats[username][chatID]
	if !ok {
		return nil, ErrChatNotFound
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = m.now()
	}
	chat.Messages = append(chat.Messages, msg)

	// Auto-title: the very first user message names a still-untitled chat.
	if len(chat.Messages) == 1 && msg.Role == domain.RoleUser && chat.Title == domain.DefaultChatTitle {
		chat.Title = domain.DeriveTitle(msg.Content)
	}
	return copyChat(chat), nil
}

func copyChat(c *domain.Chat) *domain.Chat {
	cp := *c
	cp.Messages = make([]domain.Message, len(c.Messages))
	copy(cp.Messages, c.Messages)
	return &cp
}
