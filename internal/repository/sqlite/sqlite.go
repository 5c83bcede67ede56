// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY SQLITE?
// An embedded database — it lives inside the binary as a single file, with
// nothing to install or operate. For a single-server wishlist service
// that's the right trade, and ":memory:" gives tests a real SQL engine for
// free.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 needs CGo, which complicates cross-compilation.
// modernc.org/sqlite is a pure-Go translation of SQLite — works everywhere
// Go works.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: the driver registers itself with database/sql
	// under the name "sqlite".
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool. The per-kind repositories returned by
// Users, WishLists, and Gifts share this pool; each implements the
// matching interface from the repository package.
type DB struct {
	conn *sql.DB
}

// Users returns the account repository backed by this database.
func (db *DB) Users() *UserRepo {
	return &UserRepo{conn: db.conn}
}

// WishLists returns the wish-list repository backed by this database.
func (db *DB) WishLists() *WishListRepo {
	return &WishListRepo{conn: db.conn}
}

// Gifts returns the gift repository backed by this database.
func (db *DB) Gifts() *GiftRepo {
	return &GiftRepo{conn: db.conn}
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for an in-memory database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// sql.Open doesn't connect; Ping surfaces a bad path or permissions
	// problem now instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — SQLite's default
	// journal mode locks the whole file per write, which a web server
	// can't live with.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. We need them ON: the
	// gift → wish list → user reference chain is what the cascades and the
	// ownership checks rest on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Callers should defer this
// right after New so the WAL is flushed and the file lock released even on
// a panic.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS is idempotent, so
// running it on every start is safe.
//
// The UNIQUE constraints on users.username and users.email are load-bearing:
// the registry checks uniqueness before writing, but only these constraints
// make the check race-proof against concurrent duplicate registrations.
//
// ON DELETE CASCADE backs up the explicit cascade deletes in wishlist.go
// and user.go — the repository performs the cascades itself inside a
// transaction, and the constraint guarantees no orphan can survive even a
// path that bypasses them.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS wish_lists (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			owner_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_wish_lists_owner_id ON wish_lists(owner_id);
	`)
	if err != nil {
		return fmt.Errorf("creating wish_lists table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS gifts (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			image_url    TEXT NOT NULL DEFAULT '',
			price        REAL NOT NULL DEFAULT 0,
			store_url    TEXT NOT NULL DEFAULT '',
			reserved     INTEGER NOT NULL DEFAULT 0,
			wish_list_id TEXT NOT NULL REFERENCES wish_lists(id) ON DELETE CASCADE,
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_gifts_wish_list_id ON gifts(wish_list_id);
	`)
	if err != nil {
		return fmt.Errorf("creating gifts table: %w", err)
	}

	return nil
}
