// File: internal/store/memory_test.go
package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/avasilyev/geminichat/internal/domain"
)

func newTestStore() (*Memory, context.Context) {
	return NewMemory(), context.Background()
}

func TestCreateUserAndFind(t *testing.T) {
	m, ctx := newTestStore()

	if _, err := m.FindUser(ctx, "alice"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("FindUser on empty store = %v, want ErrUserNotFound", err)
	}

	if err := m.CreateUser(ctx, &domain.User{Username: "alice", PasswordHash: "digest"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	u, err := m.FindUser(ctx, "alice")
	if err != nil {
		t.Fatalf("FindUser after create: %v", err)
	}
	if u.PasswordHash != "digest" {
		t.Errorf("PasswordHash = %q, want %q", u.PasswordHash, "digest")
	}

	if err := m.CreateUser(ctx, &domain.User{Username: "alice"}); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate CreateUser = %v, want ErrUserExists", err)
	}

	// Usernames are case-sensitive.
	if _, err := m.FindUser(ctx, "Alice"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("FindUser(%q) = %v, want ErrUserNotFound", "Alice", err)
	}
}

func TestCreateUserProvisionsEmptyNamespace(t *testing.T) {
	m, ctx := newTestStore()
	if err := m.CreateUser(ctx, &domain.User{Username: "alice"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	chats, err := m.ListChats(ctx, "alice")
	if err != nil {
		t.Fatalf("ListChats: %v", err)
	}
	if len(chats) != 0 {
		t.Errorf("new user has %d chats, want 0", len(chats))
	}
}

func TestCreateChatDefaults(t *testing.T) {
	m, ctx := newTestStore()

	chat, err := m.CreateChat(ctx, "alice")
	if err != nil {
		t.Fatalf("CreateChat: %v", err)
	}
	if chat.ID == "" {
		t.Error("chat id is empty")
	}
	if chat.Title != domain.DefaultChatTitle {
		t.Errorf("Title = %q, want %q", chat.Title, domain.DefaultChatTitle)
	}
	if len(chat.Messages) != 0 {
		t.Errorf("new chat has %d messages, want 0", len(chat.Messages))
	}
	if chat.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestCreateChatIDsAreUnique(t *testing.T) {
	m, ctx := newTestStore()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		chat, err := m.CreateChat(ctx, "alice")
		if err != nil {
			t.Fatalf("CreateChat: %v", err)
		}
		if seen[chat.ID] {
			t.Fatalf("duplicate chat id %q", chat.ID)
		}
		seen[chat.ID] = true
	}
}

func TestListChatsNewestFirst(t *testing.T) {
	m, ctx := newTestStore()

	// Control the clock so creation order is unambiguous.
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	var ids []string
	for i := 0; i < 3; i++ {
		chat, err := m.CreateChat(ctx, "alice")
		if err != nil {
			t.Fatalf("CreateChat: %v", err)
		}
		ids = append(ids, chat.ID)
	}

	chats, err := m.ListChats(ctx, "alice")
	if err != nil {
		t.Fatalf("ListChats: %v", err)
	}
	if len(chats) != 3 {
		t.Fatalf("ListChats returned %d chats, want 3", len(chats))
	}
	for i := 0; i < 3; i++ {
		if chats[i].ID != ids[2-i] {
			t.Errorf("chats[%d].ID = %s, want %s (newest first)", i, chats[i].ID, ids[2-i])
		}
	}
}

func TestListChatsReflectsLiveSet(t *testing.T) {
	m, ctx := newTestStore()

	a, _ := m.CreateChat(ctx, "alice")
	b, _ := m.CreateChat(ctx, "alice")

	if err := m.DeleteChat(ctx, "alice", a.ID); err != nil {
		t.Fatalf("DeleteChat: %v", err)
	}

	chats, _ := m.ListChats(ctx, "alice")
	if len(chats) != 1 || chats[0].ID != b.ID {
		t.Errorf("live set = %+v, want only %s", chats, b.ID)
	}

	if _, err := m.GetChat(ctx, "alice", a.ID); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("GetChat on deleted chat = %v, want ErrChatNotFound", err)
	}
	if err := m.DeleteChat(ctx, "alice", a.ID); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("second DeleteChat = %v, want ErrChatNotFound", err)
	}
}

func TestChatsAreNamespacedPerUser(t *testing.T) {
	m, ctx := newTestStore()

	chat, _ := m.CreateChat(ctx, "alice")

	if _, err := m.GetChat(ctx, "bob", chat.ID); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("GetChat across users = %v, want ErrChatNotFound", err)
	}
	if err := m.RenameChat(ctx, "bob", chat.ID, "stolen"); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("RenameChat across users = %v, want ErrChatNotFound", err)
	}
	if err := m.DeleteChat(ctx, "bob", chat.ID); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("DeleteChat across users = %v, want ErrChatNotFound", err)
	}
}

func TestRenameChat(t *testing.T) {
	m, ctx := newTestStore()
	chat, _ := m.CreateChat(ctx, "alice")

	if err := m.RenameChat(ctx, "alice", chat.ID, "Trip planning"); err != nil {
		t.Fatalf("RenameChat: %v", err)
	}
	got, _ := m.GetChat(ctx, "alice", chat.ID)
	if got.Title != "Trip planning" {
		t.Errorf("Title = %q, want %q", got.Title, "Trip planning")
	}

	if err := m.RenameChat(ctx, "alice", "no-such-id", "x"); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("RenameChat on unknown id = %v, want ErrChatNotFound", err)
	}
}

func TestAppendMessageAutoTitle(t *testing.T) {
	m, ctx := newTestStore()
	chat, _ := m.CreateChat(ctx, "alice")

	got, err := m.AppendMessage(ctx, "alice", chat.ID, domain.Message{Role: domain.RoleUser, Content: "Hello"})
	if err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}
	if got.Title != "Hello" {
		t.Errorf("Title after first message = %q, want %q", got.Title, "Hello")
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "Hello" {
		t.Errorf("Messages = %+v, want single %q", got.Messages, "Hello")
	}
	if got.Messages[0].Timestamp.IsZero() {
		t.Error("message timestamp not set")
	}

	// A second message never changes the title.
	got, _ = m.AppendMessage(ctx, "alice", chat.ID, domain.Message{Role: domain.RoleUser, Content: "Something else"})
	if got.Title != "Hello" {
		t.Errorf("Title after second message = %q, want %q", got.Title, "Hello")
	}
}

func TestAppendMessageLongFirstMessageTruncatesTitle(t *testing.T) {
	m, ctx := newTestStore()
	chat, _ := m.CreateChat(ctx, "alice")

	long := strings.Repeat("x", 80)
	got, _ := m.AppendMessage(ctx, "alice", chat.ID, domain.Message{Role: domain.RoleUser, Content: long})
	want := strings.Repeat("x", 50) + "..."
	if got.Title != want {
		t.Errorf("Title = %q, want %q", got.Title, want)
	}
}

func TestAppendMessageKeepsCustomTitle(t *testing.T) {
	m, ctx := newTestStore()
	chat, _ := m.CreateChat(ctx, "alice")

	if err := m.RenameChat(ctx, "alice", chat.ID, "My title"); err != nil {
		t.Fatalf("RenameChat: %v", err)
	}
	got, _ := m.AppendMessage(ctx, "alice", chat.ID, domain.Message{Role: domain.RoleUser, Content: "Hello"})
	if got.Title != "My title" {
		t.Errorf("Title = %q, want custom title preserved", got.Title)
	}
}

func TestAppendMessageUnknownChat(t *testing.T) {
	m, ctx := newTestStore()
	if _, err := m.AppendMessage(ctx, "alice", "nope", domain.Message{Role: domain.RoleUser, Content: "hi"}); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("AppendMessage = %v, want ErrChatNotFound", err)
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	m, ctx := newTestStore()
	chat, _ := m.CreateChat(ctx, "alice")
	m.AppendMessage(ctx, "alice", chat.ID, domain.Message{Role: domain.RoleUser, Content: "Hello"})

	snapshot, _ := m.GetChat(ctx, "alice", chat.ID)
	snapshot.Title = "mutated"
	snapshot.Messages[0].Content = "mutated"

	fresh, _ := m.GetChat(ctx, "alice", chat.ID)
	if fresh.Title == "mutated" || fresh.Messages[0].Content == "mutated" {
		t.Error("mutating a snapshot leaked into the store")
	}
}
