// Package repository defines the storage interfaces the service layer
// programs against. The sqlite subpackage implements them; service tests
// substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/wishlist/internal/model"
)

// UserRepository stores accounts.
//
// Username and email uniqueness is enforced twice: the registry checks
// before writing, and the storage layer carries UNIQUE constraints so a
// concurrent duplicate write still fails — Create must surface that as a
// Conflict, not a raw driver error.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Delete removes the user and cascades to their wish lists (and,
	// transitively, the gifts on them).
	Delete(ctx context.Context, id string) error
}

// WishListRepository stores wish lists.
type WishListRepository interface {
	Create(ctx context.Context, list *model.WishList) error
	GetByID(ctx context.Context, id string) (*model.WishList, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.WishList, error)
	Update(ctx context.Context, list *model.WishList) error
	// Delete removes the list and every gift on it. The cascade is an
	// explicit operation here, not implicit framework behaviour, so it can
	// be tested directly.
	Delete(ctx context.Context, id string) error
}

// GiftRepository stores gifts.
//
// ToggleReserved and Reserve live at the storage layer because they must
// be atomic read-modify-writes: two concurrent flips on the same gift may
// not interleave partial state.
type GiftRepository interface {
	Create(ctx context.Context, gift *model.Gift) error
	GetByID(ctx context.Context, id string) (*model.Gift, error)
	ListByWishList(ctx context.Context, wishListID string) ([]model.Gift, error)
	Update(ctx context.Context, gift *model.Gift) error
	Delete(ctx context.Context, id string) error
	// ToggleReserved flips the reserved flag unconditionally and returns
	// the resulting gift.
	ToggleReserved(ctx context.Context, id string) (*model.Gift, error)
	// Reserve sets the reserved flag, failing with AlreadyReserved if it
	// is already set.
	Reserve(ctx context.Context, id string) error
}
