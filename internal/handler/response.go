// Package handler contains the HTTP layer: request parsing, identity
// resolution, and response shaping. No business rules live here.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/wishlist/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API
// endpoints: a machine-readable type plus a human-readable message, the
// same shape for 400, 401, 403, 404, 409, and 500.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeJSON sends a JSON response with the given status code.
//
// Headers and status must be set before the first body write — Encode
// writes, so the order here is fixed.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already gone; logging is all that's left.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status and sends it.
//
// This is the single place domain errors meet HTTP. The services return
// apperror values; the switch below is the whole taxonomy:
//
//	ValidationFailed → 400    Unauthorized    → 401
//	Forbidden        → 403    NotFound        → 404
//	Conflict         → 409    AlreadyReserved → 409 (distinct error type)
//	Internal         → 500 (message preserved — a consistency fault must
//	                        not be masked as a generic failure)
//
// Anything that isn't an AppError is an unexpected failure: generic 500,
// no internal detail leaked to the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			errorType = "unauthorized"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			errorType = "conflict"
		case errors.Is(err, apperror.ErrAlreadyReserved):
			status = http.StatusConflict
			errorType = "already_reserved"
		case errors.Is(err, apperror.ErrInternal):
			status = http.StatusInternalServerError
			errorType = "internal_consistency"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
