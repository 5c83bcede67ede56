package model

import "time"

// WishList is a named collection of gifts owned by exactly one user.
//
// OwnerID is a back-reference to the owning User — the list does not own
// its user. Every mutating operation on a list (and on the gifts inside it)
// is authorized against this field. Gifts reference the list through
// Gift.WishListID rather than being embedded here; they're loaded
// separately when needed.
type WishList struct {
	ID          string    `json:"id"          db:"id"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	OwnerID     string    `json:"ownerId"     db:"owner_id"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}
