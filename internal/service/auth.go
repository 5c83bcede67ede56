// Package service — authentication flow.
//
// AuthService orchestrates the two credential operations:
//
//	register → delegates to the account registry; returns the account,
//	           NOT a token (the user logs in separately)
//	login    → verifies credentials, asks the token service for a JWT
//
// It owns no rules of its own beyond the uniform-failure policy on login.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/wishlist/internal/apperror"
	"github.com/sakif/wishlist/internal/auth"
	"github.com/sakif/wishlist/internal/model"
)

// loginFailedMessage is the single message for EVERY login failure.
// "Unknown username" and "wrong password" must be indistinguishable from
// outside, otherwise the login endpoint doubles as a username oracle.
const loginFailedMessage = "invalid username or password"

// AuthService handles registration and login.
type AuthService struct {
	users     *UserService
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users *UserService,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account via the registry. Conflict and validation
// errors propagate unchanged. No token is issued here.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword string) (*model.User, error) {
	return s.users.Register(ctx, username, email, rawPassword)
}

// Login verifies the credentials and issues a token whose identity is the
// account's username.
//
// Both failure paths — account not found, password mismatch — return the
// same Unauthorized with the same message. The distinction is logged
// server-side at debug level only.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrValidation) {
			s.logger.Debug("login failed: unknown username", slog.String("username", username))
			return "", apperror.Unauthorized(loginFailedMessage)
		}
		return "", fmt.Errorf("service/auth: resolving user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, rawPassword); err != nil {
		s.logger.Debug("login failed: password mismatch", slog.String("username", username))
		return "", apperror.Unauthorized(loginFailedMessage)
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("service/auth: issuing token for %s: %w", user.Username, err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID), slog.String("username", user.Username))
	return token, nil
}

// ResolveIdentity maps a verified token identity (username) back to the
// account it names. Used by handlers after the auth middleware to obtain
// the acting account ID they pass into the ownership domain.
//
// A token whose account has vanished since issuance yields Unauthorized,
// not NotFound: from the caller's perspective their credential simply no
// longer works.
func (s *AuthService) ResolveIdentity(ctx context.Context, identity string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, identity)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrValidation) {
			return nil, apperror.Unauthorized("valid authentication required")
		}
		return nil, fmt.Errorf("service/auth: resolving identity: %w", err)
	}
	return user, nil
}
