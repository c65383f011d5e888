// File: internal/services/chat/errors.go
package chat

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMessage means the message text was empty after trimming.
	ErrEmptyMessage = errors.New("message cannot be empty")
	// ErrEmptyTitle means a rename target was empty after trimming.
	ErrEmptyTitle = errors.New("title cannot be empty")
)

// UpstreamError marks a failure of the configured AI capability during a
// message exchange. The user's message has already been stored by the time
// this is returned; the underlying detail is surfaced to the caller.
type UpstreamError struct {
	Cause error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("error getting AI response: %v", e.Cause)
}

func (e *UpstreamError) Unwrap() error { return e.Cause }
