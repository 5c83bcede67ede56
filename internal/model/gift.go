package model

import "time"

// Gift is a single item on a wish list.
//
// A gift always belongs to exactly one list (WishListID) and cannot outlive
// it — deleting a list deletes its gifts. The ownership chain for
// authorization runs Gift → WishList → User: only the list's owner may
// create, update, or delete a gift.
//
// Reserved is the one field with different rules: ANY caller may flip it.
// That asymmetry is the point of the app — a friend reserves a gift without
// the list owner being involved (or told who reserved it).
type Gift struct {
	ID          string    `json:"id"          db:"id"`
	Name        string    `json:"name"        db:"name"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"imageUrl"    db:"image_url"`
	Price       float64   `json:"price"       db:"price"`
	StoreURL    string    `json:"storeUrl"    db:"store_url"`
	Reserved    bool      `json:"reserved"    db:"reserved"`
	WishListID  string    `json:"wishListId"  db:"wish_list_id"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}
