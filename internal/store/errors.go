// File: internal/store/errors.go
package store

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrChatNotFound = errors.New("chat not found")
)
