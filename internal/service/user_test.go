package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sakif/wishlist/internal/apperror"
)

// =========================================================================
// REGISTER TESTS
// =========================================================================

func TestRegister_Success(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret!")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.ID == "" {
		t.Error("expected registered user to have an ID")
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want %q", user.Username, "alice")
	}
	if user.PasswordHash == "s3cret!" || user.PasswordHash == "" {
		t.Error("expected password to be stored as a hash, never raw")
	}
}

func TestRegister_TrimsWhitespace(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Register(context.Background(), "  alice  ", "  alice@example.com  ", "s3cret!")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want trimmed %q", user.Username, "alice")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newTestUserService(t)

	if _, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret!"); err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "alice", "other@example.com", "s3cret!")
	if err == nil {
		t.Fatal("Register() should reject a duplicate username")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService(t)

	if _, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret!"); err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	// Different username, same email — still a conflict.
	_, err := svc.Register(context.Background(), "alicia", "alice@example.com", "s3cret!")
	if err == nil {
		t.Fatal("Register() should reject a duplicate email")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestRegister_DuplicatePersistsNothing(t *testing.T) {
	svc, repo := newTestUserService(t)

	if _, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret!"); err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	_, _ = svc.Register(context.Background(), "alice", "other@example.com", "s3cret!")

	if len(repo.users) != 1 {
		t.Errorf("store holds %d users after rejected duplicate, want 1", len(repo.users))
	}
}

func TestRegister_UsernameTooShort(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Register(context.Background(), "al", "al@example.com", "s3cret!")
	if err == nil {
		t.Fatal("Register() should reject a two-character username")
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestRegister_UsernameTooLong(t *testing.T) {
	svc, _ := newTestUserService(t)

	long := strings.Repeat("a", MaxUsernameLength+1)
	_, err := svc.Register(context.Background(), long, "long@example.com", "s3cret!")
	if err == nil {
		t.Fatal("Register() should reject an over-long username")
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc, _ := newTestUserService(t)

	for _, email := range []string{"", "not-an-email", "missing-at.example.com"} {
		_, err := svc.Register(context.Background(), "alice", email, "s3cret!")
		if err == nil {
			t.Fatalf("Register() should reject email %q", email)
		}
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("email %q: error = %v, want ErrValidation", email, err)
		}
	}
}

func TestRegister_PasswordTooShort(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "12345")
	if err == nil {
		t.Fatal("Register() should reject a five-character password")
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

// =========================================================================
// LOOKUP TESTS
// =========================================================================

func TestGetByUsername_Success(t *testing.T) {
	svc, _ := newTestUserService(t)

	created, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret!")
	if err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	found, err := svc.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %q, want %q", found.ID, created.ID)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.GetByUsername(context.Background(), "nobody")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGetByID_EmptyID(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.GetByID(context.Background(), "")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}
