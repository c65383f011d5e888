// File: internal/middleware/constants.go
package middleware

// Context keys for middleware communication
type contextKey string

const (
	UsernameKey contextKey = "username"
)

// AuthCookieName is the session cookie carrying the signed token.
const AuthCookieName = "auth_token"
