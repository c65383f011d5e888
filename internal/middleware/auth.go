// File: internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/avasilyev/geminichat/internal/auth"
)

// ClearAuthCookie expires the session cookie.
func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Username returns the authenticated username stored by the auth
// middleware, or "" when the request is unauthenticated.
func Username(ctx context.Context) string {
	username, _ := ctx.Value(UsernameKey).(string)
	return username
}

func resolveUsername(r *http.Request, secretKey []byte) (string, bool) {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil {
		return "", false
	}
	username, err := auth.ValidateToken(cookie.Value, secretKey)
	if err != nil {
		return "", false
	}
	return username, true
}

// RequireAuthJSON validates the session cookie and rejects unauthenticated
// requests with the uniform 401 JSON payload. Used for /api routes.
func RequireAuthJSON(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, ok := resolveUsername(r, secretKey)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"success": false,
					"message": "Not authenticated",
				})
				return
			}
			ctx := context.WithValue(r.Context(), UsernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthPage validates the session cookie and redirects browsers to
// the login page when it is missing or invalid. Used for page routes.
func RequireAuthPage(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, ok := resolveUsername(r, secretKey)
			if !ok {
				ClearAuthCookie(w)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), UsernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves the username when a valid cookie is present but
// lets the request through either way. Lets / and /login decide where to
// send an already-authenticated browser.
func OptionalAuth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if username, ok := resolveUsername(r, secretKey); ok {
				r = r.WithContext(context.WithValue(r.Context(), UsernameKey, username))
			}
			next.ServeHTTP(w, r)
		})
	}
}
