// Package service — wish list operations of the ownership domain.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/wishlist/internal/apperror"
	"github.com/sakif/wishlist/internal/model"
	"github.com/sakif/wishlist/internal/repository"
)

// WishListService handles the wish list lifecycle. Reads are open to
// anyone; every mutation is authorized against the list's owner.
type WishListService struct {
	lists  repository.WishListRepository
	users  *UserService
	logger *slog.Logger
}

// NewWishListService creates a WishListService. The registry dependency is
// how Create resolves the owning account.
func NewWishListService(lists repository.WishListRepository, users *UserService, logger *slog.Logger) *WishListService {
	return &WishListService{
		lists:  lists,
		users:  users,
		logger: logger,
	}
}

// Create persists a new, empty wish list owned by ownerID.
//
// The owner is resolved through the registry first: a list must never be
// created pointing at an account that no longer exists (NotFound if it
// vanished between authentication and this call).
func (s *WishListService) Create(ctx context.Context, title, description, ownerID string) (*model.WishList, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "wish list title is required")
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	list := &model.WishList{
		Title:       title,
		Description: strings.TrimSpace(description),
		OwnerID:     owner.ID,
	}

	if err := s.lists.Create(ctx, list); err != nil {
		s.logger.Error("failed to create wish list",
			slog.String("ownerID", owner.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating wish list: %w", err)
	}

	s.logger.Info("wish list created",
		slog.String("id", list.ID),
		slog.String("ownerID", list.OwnerID),
	)

	return list, nil
}

// GetByID retrieves a wish list. No authorization — lists are readable by
// anyone who has the ID, which is what lets friends browse them.
func (s *WishListService) GetByID(ctx context.Context, id string) (*model.WishList, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "wish list ID is required")
	}
	return s.lists.GetByID(ctx, id)
}

// ListByOwner returns all wish lists owned by the given account.
func (s *WishListService) ListByOwner(ctx context.Context, ownerID string) ([]model.WishList, error) {
	lists, err := s.lists.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list wish lists", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing wish lists: %w", err)
	}
	return lists, nil
}

// Update overwrites a list's title and description. Owner only.
func (s *WishListService) Update(ctx context.Context, id, title, description, actingUserID string) (*model.WishList, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "wish list title is required")
	}

	list, err := s.lists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(ctx, actingUserID, "you do not have permission to edit this wish list",
		func(context.Context) (string, error) { return list.OwnerID, nil },
	); err != nil {
		return nil, err
	}

	list.Title = title
	list.Description = strings.TrimSpace(description)

	if err := s.lists.Update(ctx, list); err != nil {
		s.logger.Error("failed to update wish list",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating wish list: %w", err)
	}

	s.logger.Info("wish list updated", slog.String("id", list.ID))
	return list, nil
}

// Delete removes a list and, transitively, every gift on it. Owner only.
func (s *WishListService) Delete(ctx context.Context, id, actingUserID string) error {
	list, err := s.lists.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := requireOwner(ctx, actingUserID, "you do not have permission to delete this wish list",
		func(context.Context) (string, error) { return list.OwnerID, nil },
	); err != nil {
		return err
	}

	if err := s.lists.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("wish list deleted",
		slog.String("id", id),
		slog.String("ownerID", list.OwnerID),
	)
	return nil
}
