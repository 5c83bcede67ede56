package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/wishlist/internal/apperror"
	"github.com/sakif/wishlist/internal/model"
	"github.com/sakif/wishlist/internal/repository"
)

// UserRepo stores accounts. Obtain one via DB.Users().
type UserRepo struct {
	conn *sql.DB
}

// compile-time check that *UserRepo implements repository.UserRepository
var _ repository.UserRepository = (*UserRepo)(nil)

// isUniqueViolation reports whether err is SQLite complaining about a
// UNIQUE constraint. modernc.org/sqlite doesn't export a typed error for
// this, so we match on the stable constraint-failure message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new user.
//
// The registry checks username/email uniqueness before calling this, but
// that check-then-write is not atomic against a concurrent registration.
// The UNIQUE constraints close the race, and we translate the constraint
// violation into the same Conflict the pre-check produces — callers can't
// tell (and shouldn't care) which layer caught the duplicate.
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", user.Username)
		}
		return fmt.Errorf("sqlite: creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getUser(ctx, `WHERE id = ?`, id)
}

// GetByUsername retrieves a user by their unique username — the lookup the
// login flow and the token-identity resolution both go through.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getUser(ctx, `WHERE username = ?`, username)
}

func (r *UserRepo) getUser(ctx context.Context, where, arg string) (*model.User, error) {
	var u model.User

	err := r.conn.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM users `+where,
		arg,
	).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", arg)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", arg, err)
	}

	return &u, nil
}

// ExistsByUsername reports whether a user with the given username exists.
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.userExists(ctx, `username`, username)
}

// ExistsByEmail reports whether a user with the given email exists.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.userExists(ctx, `email`, email)
}

func (r *UserRepo) userExists(ctx context.Context, column, value string) (bool, error) {
	var exists bool
	// The column name is one of two package-internal constants, never user
	// input, so interpolating it is safe.
	err := r.conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE `+column+` = ?)`,
		value,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking user %s: %w", column, err)
	}
	return exists, nil
}

// Delete removes a user, their wish lists, and every gift on those lists.
//
// The cascade is written out explicitly inside one transaction rather than
// left to the ON DELETE CASCADE constraints: either all three deletes
// commit or none do, and the behaviour is testable without relying on
// pragma state.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning user delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM gifts WHERE wish_list_id IN (SELECT id FROM wish_lists WHERE owner_id = ?)`,
		id,
	); err != nil {
		return fmt.Errorf("sqlite: deleting gifts of user %s: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM wish_lists WHERE owner_id = ?`, id,
	); err != nil {
		return fmt.Errorf("sqlite: deleting wish lists of user %s: %w", id, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing user delete: %w", err)
	}
	return nil
}
