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

// WishListRepo stores wish lists. Obtain one via DB.WishLists().
type WishListRepo struct {
	conn *sql.DB
}

// compile-time check that *WishListRepo implements repository.WishListRepository
var _ repository.WishListRepository = (*WishListRepo)(nil)

// Create inserts a new wish list. The ID and timestamps are generated here
// and written back into the caller's struct.
func (r *WishListRepo) Create(ctx context.Context, list *model.WishList) error {
	list.ID = xid.New().String()

	now := time.Now()
	list.CreatedAt = now
	list.UpdatedAt = now

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO wish_lists (id, title, description, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		list.ID,
		list.Title,
		list.Description,
		list.OwnerID,
		list.CreatedAt,
		list.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating wish list: %w", err)
	}

	return nil
}

// GetByID retrieves a single wish list.
// Returns apperror.ErrNotFound if it doesn't exist.
func (r *WishListRepo) GetByID(ctx context.Context, id string) (*model.WishList, error) {
	var l model.WishList

	err := r.conn.QueryRowContext(ctx,
		`SELECT id, title, description, owner_id, created_at, updated_at
		 FROM wish_lists
		 WHERE id = ?`,
		id,
	).Scan(
		&l.ID,
		&l.Title,
		&l.Description,
		&l.OwnerID,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("wish list", id)
		}
		return nil, fmt.Errorf("sqlite: getting wish list %s: %w", id, err)
	}

	return &l, nil
}

// ListByOwner returns every wish list owned by the given user. Order is
// unspecified by the API; creation time keeps responses stable between
// calls.
func (r *WishListRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.WishList, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, title, description, owner_id, created_at, updated_at
		 FROM wish_lists
		 WHERE owner_id = ?
		 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing wish lists for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	lists := make([]model.WishList, 0, 8)
	for rows.Next() {
		var l model.WishList
		if err := rows.Scan(
			&l.ID, &l.Title, &l.Description, &l.OwnerID,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning wish list row: %w", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating wish lists: %w", err)
	}

	return lists, nil
}

// Update overwrites title and description. RowsAffected detects a vanished
// row and turns it into NotFound.
func (r *WishListRepo) Update(ctx context.Context, list *model.WishList) error {
	list.UpdatedAt = time.Now()

	result, err := r.conn.ExecContext(ctx,
		`UPDATE wish_lists
		 SET title = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		list.Title,
		list.Description,
		list.UpdatedAt,
		list.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating wish list %s: %w", list.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("wish list", list.ID)
	}

	return nil
}

// Delete removes a wish list and every gift on it, in one transaction.
// A gift must not outlive its list — the explicit two-step delete makes
// that invariant visible and testable instead of burying it in the
// schema's ON DELETE CASCADE.
func (r *WishListRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning wish list delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM gifts WHERE wish_list_id = ?`, id,
	); err != nil {
		return fmt.Errorf("sqlite: deleting gifts of wish list %s: %w", id, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM wish_lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting wish list %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("wish list", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing wish list delete: %w", err)
	}
	return nil
}
