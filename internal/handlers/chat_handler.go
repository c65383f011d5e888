// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avasilyev/geminichat/internal/metrics"
	"github.com/avasilyev/geminichat/internal/middleware"
	"github.com/avasilyev/geminichat/internal/services/ai"
	chatsvc "github.com/avasilyev/geminichat/internal/services/chat"
	"github.com/avasilyev/geminichat/internal/store"
)

type ChatHandler struct {
	Chats *chatsvc.Service
}

func NewChatHandler(cs *chatsvc.Service) *ChatHandler {
	return &ChatHandler{Chats: cs}
}

// GetUserChats handles GET /api/chats.
func (h *ChatHandler) GetUserChats(w http.ResponseWriter, r *http.Request) {
	username := middleware.Username(r.Context())

	chats, err := h.Chats.ListChats(r.Context(), username)
	if err != nil {
		writeError(w, "Could not retrieve chats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"chats":   chats,
	})
}

// CreateChat handles POST /api/chats/create.
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	username := middleware.Username(r.Context())

	chat, err := h.Chats.CreateChat(r.Context(), username)
	if err != nil {
		writeError(w, "Could not create chat", http.StatusInternalServerError)
		return
	}
	metrics.ChatsCreated.Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"chat_id": chat.ID,
	})
}

// GetChat handles GET /api/chats/{id}.
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	username := middleware.Username(r.Context())
	chatID := mux.Vars(r)["id"]

	chat, err := h.Chats.GetChat(r.Context(), username, chatID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"chat": map[string]interface{}{
			"id":       chat.ID,
			"title":    chat.Title,
			"messages": chat.Messages,
		},
	})
}

// RenameChat handles POST /api/chats/{id}/rename.
func (h *ChatHandler) RenameChat(w http.ResponseWriter, r *http.Request) {
	username := middleware.Username(r.Context())
	chatID := mux.Vars(r)["id"]

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Title cannot be empty", http.StatusBadRequest)
		return
	}

	if err := h.Chats.RenameChat(r.Context(), username, chatID, req.Title); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Chat renamed successfully",
	})
}

// DeleteChat handles DELETE /api/chats/{id}/delete.
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	username := middleware.Username(r.Context())
	chatID := mux.Vars(r)["id"]

	if err := h.Chats.DeleteChat(r.Context(), username, chatID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Chat deleted successfully",
	})
}

// SendMessage handles POST /api/chat: stores the user's message, forwards
// the conversation upstream and returns the reply.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	username := middleware.Username(r.Context())

	var req struct {
		Message string `json:"message"`
		ChatID  string `json:"chat_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Message cannot be empty", http.StatusBadRequest)
		return
	}

	reply, err := h.Chats.SendMessage(r.Context(), username, req.ChatID, req.Message)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	metrics.MessagesSent.Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": reply,
	})
}

// writeServiceError maps service errors onto the error taxonomy: 400 for
// empty input, 404 for a chat outside the caller's namespace, 503 for a
// missing AI capability, 500 for upstream failures.
func (h *ChatHandler) writeServiceError(w http.ResponseWriter, err error) {
	var upstream *chatsvc.UpstreamError
	switch {
	case errors.Is(err, chatsvc.ErrEmptyMessage):
		writeError(w, "Message cannot be empty", http.StatusBadRequest)
	case errors.Is(err, chatsvc.ErrEmptyTitle):
		writeError(w, "Title cannot be empty", http.StatusBadRequest)
	case errors.Is(err, store.ErrChatNotFound):
		writeError(w, "Chat not found", http.StatusNotFound)
	case errors.Is(err, ai.ErrNotConfigured):
		metrics.UpstreamFailures.Inc()
		writeError(w, "AI service is not configured. Please set GEMINI_API_KEY environment variable.", http.StatusServiceUnavailable)
	case errors.As(err, &upstream):
		metrics.UpstreamFailures.Inc()
		writeError(w, "Error getting AI response: "+upstream.Cause.Error(), http.StatusInternalServerError)
	default:
		writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}
