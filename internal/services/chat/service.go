// File: internal/services/chat/service.go
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/avasilyev/geminichat/internal/domain"
	"github.com/avasilyev/geminichat/internal/services"
	"github.com/avasilyev/geminichat/internal/services/ai"
	"github.com/avasilyev/geminichat/internal/store"
)

// Service orchestrates chat CRUD and the message exchange flow on top of
// the chat store and the completion provider. All operations act inside
// the calling user's namespace only.
type Service struct {
	chats    store.ChatStore
	provider ai.CompletionProvider // nil when no API key was configured
	logger   services.Logger
}

func NewService(chats store.ChatStore, provider ai.CompletionProvider, logger services.Logger) *Service {
	return &Service{chats: chats, provider: provider, logger: logger}
}

func (s *Service) ListChats(ctx context.Context, username string) ([]domain.ChatSummary, error) {
	return s.chats.ListChats(ctx, username)
}

func (s *Service) CreateChat(ctx context.Context, username string) (*domain.Chat, error) {
	chat, err := s.chats.CreateChat(ctx, username)
	if err != nil {
		return nil, err
	}
	s.logger.Info("chat created", "username", username, "chat_id", chat.ID)
	return chat, nil
}

func (s *Service) GetChat(ctx context.Context, username, chatID string) (*domain.Chat, error) {
	return s.chats.GetChat(ctx, username, chatID)
}

func (s *Service) RenameChat(ctx context.Context, username, chatID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	return s.chats.RenameChat(ctx, username, chatID, title)
}

func (s *Service) DeleteChat(ctx context.Context, username, chatID string) error {
	if err := s.chats.DeleteChat(ctx, username, chatID); err != nil {
		return err
	}
	s.logger.Info("chat deleted", "username", username, "chat_id", chatID)
	return nil
}

// SendMessage appends the user's message, forwards the conversation to the
// completion provider and appends the reply. The steps are strictly
// sequential: once the user message is stored it stays stored, even when
// the provider is unavailable or the upstream call fails.
func (s *Service) SendMessage(ctx context.Context, username, chatID, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}

	chat, err := s.chats.AppendMessage(ctx, username, chatID, domain.Message{
		Role:      domain.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	})
	if err != nil {
		return "", err
	}

	if s.provider == nil {
		return "", ai.ErrNotConfigured
	}

	// Everything before the just-appended message is prior conversation.
	history := translateHistory(chat.Messages[:len(chat.Messages)-1])

	// The upstream call runs without any store lock held; the snapshot
	// above is already a copy.
	reply, err := s.provider.Reply(ctx, history, text)
	if err != nil {
		return "", &UpstreamError{Cause: err}
	}

	if _, err := s.chats.AppendMessage(ctx, username, chatID, domain.Message{
		Role:      domain.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now(),
	}); err != nil {
		// The chat vanished mid-exchange; the reply still goes back to
		// the caller.
		s.logger.Warn("could not store assistant reply", "username", username, "chat_id", chatID, "error", err)
	}

	return reply, nil
}
