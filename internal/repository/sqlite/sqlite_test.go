package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sakif/wishlist/internal/model"
)

// newTestDB opens a throwaway database in t.TempDir with the full schema.
//
// A file, not ":memory:": SQLite in-memory databases are per-connection,
// and database/sql is a connection POOL — a second pooled connection would
// see an empty schema. The temp file disappears with the test.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// seedUser inserts an account and returns it.
func seedUser(t *testing.T, db *DB, username, email string) *model.User {
	t.Helper()

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$04$fakehashfortesting",
	}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user %s: %v", username, err)
	}
	return user
}

// seedWishList inserts a wish list owned by ownerID and returns it.
func seedWishList(t *testing.T, db *DB, ownerID, title string) *model.WishList {
	t.Helper()

	list := &model.WishList{
		Title:   title,
		OwnerID: ownerID,
	}
	if err := db.WishLists().Create(context.Background(), list); err != nil {
		t.Fatalf("seeding wish list %s: %v", title, err)
	}
	return list
}

// seedGift inserts a gift on wishListID and returns it.
func seedGift(t *testing.T, db *DB, wishListID, name string) *model.Gift {
	t.Helper()

	gift := &model.Gift{
		Name:       name,
		Price:      9.99,
		WishListID: wishListID,
	}
	if err := db.Gifts().Create(context.Background(), gift); err != nil {
		t.Fatalf("seeding gift %s: %v", name, err)
	}
	return gift
}
