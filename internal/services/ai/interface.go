// File: internal/services/ai/interface.go
package ai

import "context"

// Turn roles in the upstream API's history format. Stored assistant
// messages are sent upstream as "model" turns.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one role-tagged utterance in the upstream history format.
type Turn struct {
	Role string
	Text string
}

// CompletionProvider produces a reply to a message given the prior
// conversation as ordered turns.
type CompletionProvider interface {
	Reply(ctx context.Context, history []Turn, message string) (string, error)
}
