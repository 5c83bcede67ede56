// Package service — account registry.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/sakif/wishlist/internal/apperror"
	"github.com/sakif/wishlist/internal/auth"
	"github.com/sakif/wishlist/internal/model"
	"github.com/sakif/wishlist/internal/repository"
)

// Registration constraints.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
)

// UserService is the account registry: it creates accounts and resolves
// them by ID or username. Registration is the only place accounts come
// from — there is no admin backdoor and no upsert.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account.
//
// Both uniqueness checks run BEFORE any write: a duplicate username or
// email fails with Conflict and persists nothing. The check-then-write
// sequence can still race a concurrent registration, which is why the
// storage layer carries its own UNIQUE constraints and reports a violation
// as the same Conflict — either layer catching the duplicate looks
// identical to the caller.
//
// Only the bcrypt hash of rawPassword is ever stored.
func (s *UserService) Register(ctx context.Context, username, email, rawPassword string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength))
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.ValidationFailed("email", "invalid email format")
	}
	if len(rawPassword) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("service/user: checking username: %w", err)
	}
	if taken {
		return nil, apperror.Conflict("user", username)
	}

	taken, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service/user: checking email: %w", err)
	}
	if taken {
		return nil, apperror.Conflict("user", email)
	}

	hash, err := s.passwords.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("service/user: hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A UNIQUE violation from a lost race arrives here already shaped
		// as a Conflict by the repository; anything else is a real failure.
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// GetByUsername resolves an account by its unique username.
// Returns apperror.ErrNotFound if no such account exists.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	return s.users.GetByUsername(ctx, username)
}

// GetByID resolves an account by its internal ID.
// Returns apperror.ErrNotFound if no such account exists.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}
	return s.users.GetByID(ctx, id)
}
