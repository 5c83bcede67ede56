// Package service — gift operations of the ownership domain.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/sakif/wishlist/internal/apperror"
	"github.com/sakif/wishlist/internal/model"
	"github.com/sakif/wishlist/internal/repository"
)

// Validation constants for gifts. Price zero is allowed — a free gift is a
// valid gift; only negative prices are rejected.
const (
	MaxGiftNameLength        = 255
	MaxGiftDescriptionLength = 1000
)

// storeURLPattern is the accepted shape for a gift's store link. Loose on
// purpose: scheme optional, host plus a short TLD, then any path.
var storeURLPattern = regexp.MustCompile(`^(https?://)?([\da-z.-]+)\.([a-z.]{2,6})[/\w .-]*/?$`)

// GiftInput carries the caller-supplied fields for creating or updating a
// gift. Update ignores StoreURL (see Update); neither operation accepts a
// reserved value — that flag has its own two entry points.
type GiftInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"`
	StoreURL    string  `json:"storeUrl"`
}

// GiftService handles the gift lifecycle. Mutations are authorized through
// the gift → wish list → owner chain; the two reservation entry points are
// the deliberate exception.
type GiftService struct {
	gifts  repository.GiftRepository
	lists  repository.WishListRepository
	logger *slog.Logger
}

// NewGiftService creates a GiftService.
func NewGiftService(gifts repository.GiftRepository, lists repository.WishListRepository, logger *slog.Logger) *GiftService {
	return &GiftService{
		gifts:  gifts,
		lists:  lists,
		logger: logger,
	}
}

// validateInput enforces the field constraints shared by Create and Update.
func validateInput(in *GiftInput) error {
	in.Name = strings.TrimSpace(in.Name)

	if in.Name == "" {
		return apperror.ValidationFailed("name", "gift name is required")
	}
	if len(in.Name) > MaxGiftNameLength {
		return apperror.ValidationFailed("name",
			fmt.Sprintf("gift name must be %d characters or less", MaxGiftNameLength))
	}
	if len(in.Description) > MaxGiftDescriptionLength {
		return apperror.ValidationFailed("description",
			fmt.Sprintf("gift description must be %d characters or less", MaxGiftDescriptionLength))
	}
	if in.Price < 0 {
		return apperror.ValidationFailed("price", "gift price must not be negative")
	}
	if in.StoreURL != "" && !storeURLPattern.MatchString(in.StoreURL) {
		return apperror.ValidationFailed("storeUrl", "store link does not look like a URL")
	}
	return nil
}

// wishListOwner returns an ownerResolver that walks a gift's ownership
// chain: load the owning wish list, yield its owner. This is the resolver
// every gift mutation hands to requireOwner.
func (s *GiftService) wishListOwner(wishListID string) ownerResolver {
	return func(ctx context.Context) (string, error) {
		list, err := s.lists.GetByID(ctx, wishListID)
		if err != nil {
			return "", err
		}
		return list.OwnerID, nil
	}
}

// Create adds a gift to a wish list. Only the list's owner may do this.
//
// The gift is born unreserved regardless of input, and it must carry its
// owning-list reference both before and after the write: losing that
// reference would orphan the gift outside every ownership check, so it's
// treated as an internal-consistency fault, never a user error.
func (s *GiftService) Create(ctx context.Context, in GiftInput, wishListID, actingUserID string) (*model.Gift, error) {
	wishListID = strings.TrimSpace(wishListID)
	if wishListID == "" {
		return nil, apperror.ValidationFailed("wishListId", "wish list ID is required")
	}

	if err := requireOwner(ctx, actingUserID, "you do not have permission to add gifts to this wish list",
		s.wishListOwner(wishListID),
	); err != nil {
		return nil, err
	}

	if err := validateInput(&in); err != nil {
		return nil, err
	}

	gift := &model.Gift{
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
		ImageURL:    in.ImageURL,
		Price:       in.Price,
		StoreURL:    in.StoreURL,
		Reserved:    false,
		WishListID:  wishListID,
	}

	if gift.WishListID == "" {
		return nil, apperror.Internal("gift is missing its wish list reference before save")
	}

	if err := s.gifts.Create(ctx, gift); err != nil {
		s.logger.Error("failed to create gift",
			slog.String("wishListID", wishListID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating gift: %w", err)
	}

	if gift.WishListID == "" {
		return nil, apperror.Internal("wish list reference was lost during save")
	}

	s.logger.Info("gift created",
		slog.String("id", gift.ID),
		slog.String("wishListID", gift.WishListID),
	)

	return gift, nil
}

// GetByID retrieves a gift. Readable by anyone, like the list it's on.
func (s *GiftService) GetByID(ctx context.Context, id string) (*model.Gift, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "gift ID is required")
	}
	return s.gifts.GetByID(ctx, id)
}

// ListByWishList returns every gift on the given wish list.
func (s *GiftService) ListByWishList(ctx context.Context, wishListID string) ([]model.Gift, error) {
	wishListID = strings.TrimSpace(wishListID)
	if wishListID == "" {
		return nil, apperror.ValidationFailed("wishListId", "wish list ID is required")
	}

	gifts, err := s.gifts.ListByWishList(ctx, wishListID)
	if err != nil {
		s.logger.Error("failed to list gifts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing gifts: %w", err)
	}
	return gifts, nil
}

// Update overwrites a gift's name, description, image, and price. Owner of
// the containing wish list only.
//
// The reserved flag and the store link are left untouched: reserved is
// owned by the reservation operations, and store-link-on-update simply
// isn't part of this operation's field set (narrower than Create's — a
// preserved product quirk, not an oversight to fix here).
func (s *GiftService) Update(ctx context.Context, id string, in GiftInput, actingUserID string) (*model.Gift, error) {
	gift, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(ctx, actingUserID, "you do not have permission to edit this gift",
		s.wishListOwner(gift.WishListID),
	); err != nil {
		return nil, err
	}

	if err := validateInput(&in); err != nil {
		return nil, err
	}

	gift.Name = in.Name
	gift.Description = strings.TrimSpace(in.Description)
	gift.ImageURL = in.ImageURL
	gift.Price = in.Price

	if err := s.gifts.Update(ctx, gift); err != nil {
		s.logger.Error("failed to update gift",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating gift: %w", err)
	}

	s.logger.Info("gift updated", slog.String("id", gift.ID))
	return gift, nil
}

// Delete removes a gift. Owner of the containing wish list only.
func (s *GiftService) Delete(ctx context.Context, id, actingUserID string) error {
	gift, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := requireOwner(ctx, actingUserID, "you do not have permission to delete this gift",
		s.wishListOwner(gift.WishListID),
	); err != nil {
		return err
	}

	if err := s.gifts.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("gift deleted", slog.String("id", id))
	return nil
}

// ToggleReserved flips a gift's reserved flag and returns the result.
//
// There is NO ownership or identity check here, and that is intentional
// product behaviour, not an omission: a friend must be able to reserve (or
// un-reserve) a gift without the list owner being involved. Do not add an
// authorization check to this path.
func (s *GiftService) ToggleReserved(ctx context.Context, id string) (*model.Gift, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "gift ID is required")
	}

	gift, err := s.gifts.ToggleReserved(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("gift reservation toggled",
		slog.String("id", gift.ID),
		slog.Bool("reserved", gift.Reserved),
	)
	return gift, nil
}

// Reserve marks a gift as reserved on behalf of actingUserID, failing with
// AlreadyReserved if someone beat them to it.
//
// This is the idempotent-intent sibling of ToggleReserved: it still checks
// no ownership (any authenticated user may reserve), but unlike toggle it
// refuses to silently flip an already-reserved gift back and forth. Both
// entry points exist on purpose; collapsing them would change observable
// behaviour.
func (s *GiftService) Reserve(ctx context.Context, giftID, actingUserID string) error {
	giftID = strings.TrimSpace(giftID)
	if giftID == "" {
		return apperror.ValidationFailed("id", "gift ID is required")
	}

	if err := s.gifts.Reserve(ctx, giftID); err != nil {
		return err
	}

	s.logger.Info("gift reserved",
		slog.String("id", giftID),
		slog.String("reservedBy", actingUserID),
	)
	return nil
}
