// Package services contains server-side business logic. AuthService
// orchestrates signup, login and logout over a credential store and the
// session table.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"github.com/dmitrijs2005/selfhostdash/internal/logging"
	"github.com/dmitrijs2005/selfhostdash/internal/server/credentials"
)

// SessionManager is the part of sessions.Manager the service needs.
type SessionManager interface {
	Create(username string) (string, error)
	Validate(token string) (string, error)
	Revoke(token string)
}

type AuthService struct {
	store         credentials.Store
	sessions      SessionManager
	bootstrapOnly bool
	logger        logging.Logger
}

// NewAuthService builds the service. With bootstrapOnly set, Signup is
// rejected once any user exists.
func NewAuthService(store credentials.Store, sm SessionManager, bootstrapOnly bool, l logging.Logger) *AuthService {
	if l == nil {
		l = logging.Nop{}
	}
	return &AuthService{
		store:         store,
		sessions:      sm,
		bootstrapOnly: bootstrapOnly,
		logger:        l.With("module", "auth_service"),
	}
}

// Signup creates a user and returns a session token for it. The store's
// CreateUser is the atomic gate; the existence check here only fails fast.
func (s *AuthService) Signup(ctx context.Context, username, password string) (string, error) {
	if s.bootstrapOnly {
		exists, err := s.store.UserExistsAny(ctx)
		if err != nil {
			s.logger.Error(ctx, "signup: user lookup failed", "error", err)
			return "", err
		}
		if exists {
			return "", common.ErrBootstrapClosed
		}
	}

	if _, err := s.store.CreateUser(ctx, username, password); err != nil {
		if common.IsUnavailable(err) {
			s.logger.Error(ctx, "signup: create user failed", "error", err)
		} else {
			s.logger.Info(ctx, "signup rejected", "reason", errorKind(err))
		}
		return "", err
	}
	s.logger.Info(ctx, "user created", "username", username)

	// the user is committed; a caller that has gone away gets no session
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}

	token, err := s.sessions.Create(username)
	if err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}
	return token, nil
}

// Login verifies credentials and starts a session. Every failure, including
// an unreachable store, is reported as common.ErrInvalidCredentials; only a
// cancelled caller sees its context error.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	ok, err := s.store.VerifyCredentials(ctx, username, password)
	if err != nil {
		s.logger.Error(ctx, "login: credential check failed", "error", err)
		return "", common.ErrInvalidCredentials
	}
	if !ok {
		s.logger.Info(ctx, "login rejected")
		return "", common.ErrInvalidCredentials
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	token, err := s.sessions.Create(username)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return token, nil
}

// Logout revokes the session. It never fails.
func (s *AuthService) Logout(_ context.Context, token string) error {
	s.sessions.Revoke(token)
	return nil
}

// Authenticate returns the username bound to token.
func (s *AuthService) Authenticate(_ context.Context, token string) (string, error) {
	return s.sessions.Validate(token)
}

// SignupOpen reports whether Signup can still succeed.
func (s *AuthService) SignupOpen(ctx context.Context) (bool, error) {
	if !s.bootstrapOnly {
		return true, nil
	}
	exists, err := s.store.UserExistsAny(ctx)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// errorKind names a signup error for logs without echoing any input.
func errorKind(err error) string {
	switch {
	case errors.Is(err, common.ErrBootstrapClosed):
		return "bootstrap_closed"
	case errors.Is(err, common.ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, common.ErrValidation):
		return "validation"
	case common.IsUnavailable(err):
		return "unavailable"
	default:
		return "internal"
	}
}
