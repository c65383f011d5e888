// File: internal/handlers/auth_handlers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/avasilyev/geminichat/internal/auth"
	"github.com/avasilyev/geminichat/internal/metrics"
	"github.com/avasilyev/geminichat/internal/middleware"
	"github.com/avasilyev/geminichat/internal/services/identity"
)

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	Identity *identity.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *identity.Service) *AuthHandler {
	return &AuthHandler{Identity: service}
}

// Login handles POST /api/login. An unseen username registers and logs in;
// a known one must present the original password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	result, err := h.Identity.LoginOrRegister(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrMissingCredentials):
			writeError(w, "Username and password are required", http.StatusBadRequest)
		case errors.Is(err, identity.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("failed").Inc()
			writeError(w, "Invalid password", http.StatusUnauthorized)
		default:
			writeError(w, "Could not log in", http.StatusInternalServerError)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    result.Token,
		Expires:  time.Now().Add(auth.TokenTTL),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})

	message := "Login successful"
	outcome := "login"
	if result.Created {
		message = "Account created and logged in"
		outcome = "created"
	}
	metrics.LoginsTotal.WithLabelValues(outcome).Inc()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

// Logout handles GET /logout: clears the session cookie and sends the
// browser back to the login page. Idempotent.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
