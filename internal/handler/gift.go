package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/wishlist/internal/service"
)

// GiftHandler manages gifts and their reservation endpoints.
//
// Everything here follows the same resolve-identity-then-delegate pattern
// as WishListHandler, with one exception: HandleToggleReserved never looks
// at the caller at all. Its route is registered OUTSIDE the auth group —
// an anonymous friend with the link can reserve a gift.
type GiftHandler struct {
	gifts  *service.GiftService
	auth   *service.AuthService
	logger *slog.Logger
}

// NewGiftHandler creates a GiftHandler.
func NewGiftHandler(gifts *service.GiftService, auth *service.AuthService, logger *slog.Logger) *GiftHandler {
	return &GiftHandler{gifts: gifts, auth: auth, logger: logger}
}

// HandleCreate adds a gift to a wish list owned by the caller.
//
// HTTP: POST /api/wishlists/{id}/gifts
// BODY: {"name": "...", "description": "...", "imageUrl": "...", "price": 9.99, "storeUrl": "..."}
func (h *GiftHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, err := actingUser(r, h.auth)
	if err != nil {
		writeError(w, err)
		return
	}

	var in service.GiftInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	gift, err := h.gifts.Create(r.Context(), in, chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, gift)
}

// HandleGetByID returns a single gift.
//
// HTTP: GET /api/gifts/{id}
func (h *GiftHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	gift, err := h.gifts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gift)
}

// HandleListByWishList returns every gift on a wish list.
//
// HTTP: GET /api/wishlists/{id}/gifts
func (h *GiftHandler) HandleListByWishList(w http.ResponseWriter, r *http.Request) {
	gifts, err := h.gifts.ListByWishList(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gifts)
}

// HandleUpdate overwrites a gift's editable fields.
//
// HTTP: PUT /api/gifts/{id}
func (h *GiftHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, err := actingUser(r, h.auth)
	if err != nil {
		writeError(w, err)
		return
	}

	var in service.GiftInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	gift, err := h.gifts.Update(r.Context(), chi.URLParam(r, "id"), in, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gift)
}

// HandleDelete removes a gift.
//
// HTTP: DELETE /api/gifts/{id}
func (h *GiftHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, err := actingUser(r, h.auth)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.gifts.Delete(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleToggleReserved flips a gift's reserved flag.
//
// HTTP: POST /api/gifts/{id}/toggle-reserved (public — no auth middleware)
//
// No identity is read and none is required. This endpoint is how a friend
// without an account marks a gift as taken.
func (h *GiftHandler) HandleToggleReserved(w http.ResponseWriter, r *http.Request) {
	gift, err := h.gifts.ToggleReserved(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gift)
}

// HandleReserve marks a gift as reserved, refusing if it already is.
//
// HTTP: POST /api/gifts/{id}/reserve (authenticated, but NOT owner-gated)
//
// Responds 409 already_reserved if another caller got there first.
func (h *GiftHandler) HandleReserve(w http.ResponseWriter, r *http.Request) {
	user, err := actingUser(r, h.auth)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.gifts.Reserve(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
