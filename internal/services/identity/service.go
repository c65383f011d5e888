// File: internal/services/identity/service.go
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avasilyev/geminichat/internal/auth"
	"github.com/avasilyev/geminichat/internal/domain"
	"github.com/avasilyev/geminichat/internal/services"
	"github.com/avasilyev/geminichat/internal/store"
)

// Service implements login-or-register: a single entry point that
// registers unseen usernames and authenticates known ones. The branch is
// explicit; an existing username always attempts login, never overwrite.
type Service struct {
	users     store.UserStore
	jwtSecret []byte
	logger    services.Logger
}

// Result reports a successful login and whether it created the account.
type Result struct {
	Token   string
	Created bool
}

func NewService(users store.UserStore, jwtSecret string, logger services.Logger) *Service {
	return &Service{users: users, jwtSecret: []byte(jwtSecret), logger: logger}
}

// LoginOrRegister authenticates the username, creating the identity (and
// its empty chat namespace) when the username has never been seen.
func (s *Service) LoginOrRegister(ctx context.Context, username, password string) (*Result, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	existing, err := s.users.FindUser(ctx, username)
	switch {
	case err == nil:
		return s.login(existing, password)
	case errors.Is(err, store.ErrUserNotFound):
		return s.register(ctx, username, password)
	default:
		return nil, fmt.Errorf("identity lookup failed: %w", err)
	}
}

func (s *Service) login(user *domain.User, password string) (*Result, error) {
	if err := user.ValidatePassword(password); err != nil {
		s.logger.Warn("login failed", "username", user.Username, "error", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.Username, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	s.logger.Info("login successful", "username", user.Username)
	return &Result{Token: token}, nil
}

func (s *Service) register(ctx context.Context, username, password string) (*Result, error) {
	user := &domain.User{Username: username}
	if err := user.HashPassword(password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent first login for the same name;
		// fall back to the login branch against the stored digest.
		if errors.Is(err, store.ErrUserExists) {
			stored, findErr := s.users.FindUser(ctx, username)
			if findErr != nil {
				return nil, fmt.Errorf("identity lookup failed: %w", findErr)
			}
			return s.login(stored, password)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := auth.GenerateToken(username, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	s.logger.Info("account created", "username", username)
	return &Result{Token: token, Created: true}, nil
}
