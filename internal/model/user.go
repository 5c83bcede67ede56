// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Username and email are both unique — the registry checks them before
// writing and the database enforces them with UNIQUE constraints, so a
// concurrent duplicate registration still fails cleanly.
//
// WHY PasswordHash WITH `json:"-"`?
// The stored value is a bcrypt hash, never the raw password — but even the
// hash must not leak through an API response. The `json:"-"` tag tells
// encoding/json to always skip the field, no matter which handler encodes
// a User. Defense at the type level instead of per-handler discipline.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Username     string    `json:"username"  db:"username"`
	Email        string    `json:"email"     db:"email"`
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
