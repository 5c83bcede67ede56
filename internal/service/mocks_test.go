package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/wishlist/internal/apperror"
	"github.com/sakif/wishlist/internal/auth"
	"github.com/sakif/wishlist/internal/model"
)

// =========================================================================
// MOCK REPOSITORIES
// =========================================================================
//
// Hand-written in-memory implementations of the repository interfaces.
// The services don't know whether they're talking to SQLite or a map —
// that's the point of programming against the interfaces.
//
// Each mock stores COPIES, never the caller's pointers, so a test can't
// accidentally mutate stored state through a stale reference.

type mockUserRepo struct {
	users  map[string]*model.User // keyed by ID
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperror.Conflict("user", user.Username)
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (m *mockUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return apperror.NotFound("user", id)
	}
	delete(m.users, id)
	return nil
}

type mockWishListRepo struct {
	lists  map[string]*model.WishList
	nextID int
}

func newMockWishListRepo() *mockWishListRepo {
	return &mockWishListRepo{lists: make(map[string]*model.WishList)}
}

func (m *mockWishListRepo) Create(_ context.Context, list *model.WishList) error {
	m.nextID++
	list.ID = fmt.Sprintf("list-%d", m.nextID)
	stored := *list
	m.lists[list.ID] = &stored
	return nil
}

func (m *mockWishListRepo) GetByID(_ context.Context, id string) (*model.WishList, error) {
	l, ok := m.lists[id]
	if !ok {
		return nil, apperror.NotFound("wish list", id)
	}
	result := *l
	return &result, nil
}

func (m *mockWishListRepo) ListByOwner(_ context.Context, ownerID string) ([]model.WishList, error) {
	result := []model.WishList{}
	for _, l := range m.lists {
		if l.OwnerID == ownerID {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockWishListRepo) Update(_ context.Context, list *model.WishList) error {
	if _, ok := m.lists[list.ID]; !ok {
		return apperror.NotFound("wish list", list.ID)
	}
	stored := *list
	m.lists[list.ID] = &stored
	return nil
}

func (m *mockWishListRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.lists[id]; !ok {
		return apperror.NotFound("wish list", id)
	}
	delete(m.lists, id)
	return nil
}

type mockGiftRepo struct {
	gifts  map[string]*model.Gift
	nextID int
}

func newMockGiftRepo() *mockGiftRepo {
	return &mockGiftRepo{gifts: make(map[string]*model.Gift)}
}

func (m *mockGiftRepo) Create(_ context.Context, gift *model.Gift) error {
	m.nextID++
	gift.ID = fmt.Sprintf("gift-%d", m.nextID)
	stored := *gift
	m.gifts[gift.ID] = &stored
	return nil
}

func (m *mockGiftRepo) GetByID(_ context.Context, id string) (*model.Gift, error) {
	g, ok := m.gifts[id]
	if !ok {
		return nil, apperror.NotFound("gift", id)
	}
	result := *g
	return &result, nil
}

func (m *mockGiftRepo) ListByWishList(_ context.Context, wishListID string) ([]model.Gift, error) {
	result := []model.Gift{}
	for _, g := range m.gifts {
		if g.WishListID == wishListID {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGiftRepo) Update(_ context.Context, gift *model.Gift) error {
	stored, ok := m.gifts[gift.ID]
	if !ok {
		return apperror.NotFound("gift", gift.ID)
	}
	// Mirror the real storage layer: only the editable columns change.
	stored.Name = gift.Name
	stored.Description = gift.Description
	stored.ImageURL = gift.ImageURL
	stored.Price = gift.Price
	return nil
}

func (m *mockGiftRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.gifts[id]; !ok {
		return apperror.NotFound("gift", id)
	}
	delete(m.gifts, id)
	return nil
}

func (m *mockGiftRepo) ToggleReserved(_ context.Context, id string) (*model.Gift, error) {
	g, ok := m.gifts[id]
	if !ok {
		return nil, apperror.NotFound("gift", id)
	}
	g.Reserved = !g.Reserved
	result := *g
	return &result, nil
}

func (m *mockGiftRepo) Reserve(_ context.Context, id string) error {
	g, ok := m.gifts[id]
	if !ok {
		return apperror.NotFound("gift", id)
	}
	if g.Reserved {
		return apperror.AlreadyReserved(id)
	}
	g.Reserved = true
	return nil
}

// =========================================================================
// TEST HELPERS
// =========================================================================

// testLogger discards everything below Error so test output stays readable.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testPasswords uses the minimum bcrypt cost so registration-heavy tests
// don't spend 250ms per hash.
func testPasswords() *auth.PasswordService {
	return auth.NewPasswordServiceForTest(4)
}

// newTestUserService wires a UserService over in-memory storage.
func newTestUserService(t *testing.T) (*UserService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	return NewUserService(repo, testPasswords(), testLogger()), repo
}
