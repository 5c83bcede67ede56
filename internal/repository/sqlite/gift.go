package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/wishlist/internal/apperror"
	"github.com/sakif/wishlist/internal/model"
	"github.com/sakif/wishlist/internal/repository"
)

// GiftRepo stores gifts. Obtain one via DB.Gifts().
type GiftRepo struct {
	conn *sql.DB
}

// compile-time check that *GiftRepo implements repository.GiftRepository
var _ repository.GiftRepository = (*GiftRepo)(nil)

const giftColumns = `id, name, description, image_url, price, store_url, reserved, wish_list_id, created_at, updated_at`

func scanGift(row interface{ Scan(...any) error }) (*model.Gift, error) {
	var g model.Gift
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.ImageURL,
		&g.Price,
		&g.StoreURL,
		&g.Reserved,
		&g.WishListID,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Create inserts a new gift. Reserved is persisted exactly as the service
// set it (always false on creation).
func (r *GiftRepo) Create(ctx context.Context, gift *model.Gift) error {
	gift.ID = xid.New().String()

	now := time.Now()
	gift.CreatedAt = now
	gift.UpdatedAt = now

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO gifts (`+giftColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gift.ID,
		gift.Name,
		gift.Description,
		gift.ImageURL,
		gift.Price,
		gift.StoreURL,
		gift.Reserved,
		gift.WishListID,
		gift.CreatedAt,
		gift.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating gift: %w", err)
	}

	return nil
}

// GetByID retrieves a single gift.
// Returns apperror.ErrNotFound if it doesn't exist.
func (r *GiftRepo) GetByID(ctx context.Context, id string) (*model.Gift, error) {
	gift, err := scanGift(r.conn.QueryRowContext(ctx,
		`SELECT `+giftColumns+` FROM gifts WHERE id = ?`, id,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("gift", id)
		}
		return nil, fmt.Errorf("sqlite: getting gift %s: %w", id, err)
	}
	return gift, nil
}

// ListByWishList returns every gift on the given wish list.
func (r *GiftRepo) ListByWishList(ctx context.Context, wishListID string) ([]model.Gift, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT `+giftColumns+` FROM gifts
		 WHERE wish_list_id = ?
		 ORDER BY created_at DESC`,
		wishListID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing gifts for wish list %s: %w", wishListID, err)
	}
	defer rows.Close()

	gifts := make([]model.Gift, 0, 8)
	for rows.Next() {
		g, err := scanGift(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning gift row: %w", err)
		}
		gifts = append(gifts, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating gifts: %w", err)
	}

	return gifts, nil
}

// Update overwrites name, description, image URL, and price.
//
// Deliberately NOT in the SET clause: reserved (only the toggle/reserve
// operations may touch it) and store_url (update's field set is narrower
// than create's — a preserved quirk of the product behaviour).
func (r *GiftRepo) Update(ctx context.Context, gift *model.Gift) error {
	gift.UpdatedAt = time.Now()

	result, err := r.conn.ExecContext(ctx,
		`UPDATE gifts
		 SET name = ?, description = ?, image_url = ?, price = ?, updated_at = ?
		 WHERE id = ?`,
		gift.Name,
		gift.Description,
		gift.ImageURL,
		gift.Price,
		gift.UpdatedAt,
		gift.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating gift %s: %w", gift.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("gift", gift.ID)
	}

	return nil
}

// Delete removes a gift by its ID.
func (r *GiftRepo) Delete(ctx context.Context, id string) error {
	result, err := r.conn.ExecContext(ctx, `DELETE FROM gifts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting gift %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("gift", id)
	}

	return nil
}

// ToggleReserved flips the reserved flag unconditionally and returns the
// resulting gift.
//
// The flip and the read-back run inside one transaction: the UPDATE with
// `reserved = NOT reserved` is atomic on its own, but without the
// transaction a concurrent toggle could commit between our write and our
// SELECT, and we'd return a state we never produced.
func (r *GiftRepo) ToggleReserved(ctx context.Context, id string) (*model.Gift, error) {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning toggle: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE gifts SET reserved = NOT reserved, updated_at = ? WHERE id = ?`,
		time.Now(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: toggling gift %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, apperror.NotFound("gift", id)
	}

	gift, err := scanGift(tx.QueryRowContext(ctx,
		`SELECT `+giftColumns+` FROM gifts WHERE id = ?`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading gift %s after toggle: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing toggle: %w", err)
	}
	return gift, nil
}

// Reserve sets the reserved flag, failing if it is already set.
//
// The conditional UPDATE (`AND reserved = 0`) is the atomic check-and-set;
// when it affects no rows we query inside the same transaction to tell
// "gift missing" (NotFound) apart from "already reserved".
func (r *GiftRepo) Reserve(ctx context.Context, id string) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning reserve: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE gifts SET reserved = 1, updated_at = ? WHERE id = ? AND reserved = 0`,
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: reserving gift %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		var reserved bool
		err := tx.QueryRowContext(ctx,
			`SELECT reserved FROM gifts WHERE id = ?`, id,
		).Scan(&reserved)
		if err == sql.ErrNoRows {
			return apperror.NotFound("gift", id)
		}
		if err != nil {
			return fmt.Errorf("sqlite: checking gift %s after reserve: %w", id, err)
		}
		return apperror.AlreadyReserved(id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing reserve: %w", err)
	}
	return nil
}
