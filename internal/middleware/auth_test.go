// File: internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avasilyev/geminichat/internal/auth"
)

var secret = []byte("test-secret")

func okHandler(t *testing.T, wantUser string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := Username(r.Context()); got != wantUser {
			t.Errorf("Username in context = %q, want %q", got, wantUser)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithToken(t *testing.T, username string) *http.Request {
	t.Helper()
	req := httptest.NewRequest("GET", "/chat", nil)
	if username != "" {
		token, err := auth.GenerateToken(username, secret)
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	}
	return req
}

func TestRequireAuthJSON(t *testing.T) {
	handler := RequireAuthJSON(secret)(okHandler(t, "alice"))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithToken(t, "alice"))
	if rr.Code != http.StatusOK {
		t.Errorf("valid token: status %d, want 200", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithToken(t, ""))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("missing cookie: status %d, want 401", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/chats", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "garbage"})
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status %d, want 401", rr.Code)
	}
}

func TestRequireAuthPageRedirects(t *testing.T) {
	handler := RequireAuthPage(secret)(okHandler(t, "alice"))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithToken(t, ""))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("missing cookie: status %d, want 303", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithToken(t, "alice"))
	if rr.Code != http.StatusOK {
		t.Errorf("valid token: status %d, want 200", rr.Code)
	}
}

func TestOptionalAuth(t *testing.T) {
	// Without a cookie the request still passes, with no username set.
	handler := OptionalAuth(secret)(okHandler(t, ""))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithToken(t, ""))
	if rr.Code != http.StatusOK {
		t.Errorf("anonymous: status %d, want 200", rr.Code)
	}

	handler = OptionalAuth(secret)(okHandler(t, "alice"))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithToken(t, "alice"))
	if rr.Code != http.StatusOK {
		t.Errorf("authenticated: status %d, want 200", rr.Code)
	}
}
