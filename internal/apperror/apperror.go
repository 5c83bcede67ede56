package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("Validation Error")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrAlreadyReserved = errors.New("already reserved")
	ErrInternal        = errors.New("internal consistency fault")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthorized returns an AppError for failed authentication (bad
// credentials or an invalid/expired token). HTTP handlers map this to 401.
//
// Callers must pass the same message for every credential failure on a
// given operation — login deliberately does not distinguish "unknown
// username" from "wrong password", to prevent username enumeration.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// AlreadyReserved returns an AppError for reserving a gift whose reserved
// flag is already set. A state conflict, not a validation error — HTTP
// handlers map it to 409.
func AlreadyReserved(id string) *AppError {
	return &AppError{
		Err:     ErrAlreadyReserved,
		Message: fmt.Sprintf("gift %s is already reserved", id),
	}
}

// Internal returns an AppError for an internal-consistency fault, such as
// an owning reference missing after a write. Never swallowed or retried —
// it propagates to the caller as a fatal 500.
func Internal(message string) *AppError {
	return &AppError{
		Err:     ErrInternal,
		Message: message,
	}
}
