// File: internal/services/chat/history.go
package chat

import (
	"github.com/avasilyev/geminichat/internal/domain"
	"github.com/avasilyev/geminichat/internal/services/ai"
)

// translateHistory converts stored messages into the upstream turn format,
// preserving order: user messages become user turns, assistant messages
// become model turns.
func translateHistory(messages []domain.Message) []ai.Turn {
	turns := make([]ai.Turn, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case domain.RoleUser:
			turns = append(turns, ai.Turn{Role: ai.RoleUser, Text: msg.Content})
		case domain.RoleAssistant:
			turns = append(turns, ai.Turn{Role: ai.RoleModel, Text: msg.Content})
		}
	}
	return turns
}
