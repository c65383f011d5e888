// File: internal/services/identity/errors.go
package identity

import "errors"

var (
	// ErrMissingCredentials means username or password was empty.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrInvalidCredentials means the username exists but the password
	// does not verify against its digest.
	ErrInvalidCredentials = errors.New("invalid password")
)
