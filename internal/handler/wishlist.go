package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/wishlist/internal/service"
)

// WishListHandler manages CRUD for wish lists.
//
// Reads are public; every mutation first resolves the acting account from
// the verified token and hands its ID to the service, which performs the
// ownership check.
type WishListHandler struct {
	lists  *service.WishListService
	auth   *service.AuthService
	logger *slog.Logger
}

// NewWishListHandler creates a WishListHandler.
func NewWishListHandler(lists *service.WishListService, auth *service.AuthService, logger *slog.Logger) *WishListHandler {
	return &WishListHandler{lists: lists, auth: auth, logger: logger}
}

type wishListRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// HandleCreate creates a wish list owned by the caller.
//
// HTTP: POST /api/wishlists
// BODY: {"title": "...", "description": "..."}
func (h *WishListHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, err := actingUser(r, h.auth)
	if err != nil {
		writeError(w, err)
		return
	}

	var req wishListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	list, err := h.lists.Create(r.Context(), req.Title, req.Description, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, list)
}

// HandleGetByID returns a single wish list.
//
// HTTP: GET /api/wishlists/{id}
func (h *WishListHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	list, err := h.lists.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleListMine returns the caller's own wish lists.
//
// HTTP: GET /api/wishlists
func (h *WishListHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	user, err := actingUser(r, h.auth)
	if err != nil {
		writeError(w, err)
		return
	}

	lists, err := h.lists.ListByOwner(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

// HandleUpdate overwrites a wish list's title and description.
//
// HTTP: PUT /api/wishlists/{id}
func (h *WishListHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, err := actingUser(r, h.auth)
	if err != nil {
		writeError(w, err)
		return
	}

	var req wishListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	list, err := h.lists.Update(r.Context(), chi.URLParam(r, "id"), req.Title, req.Description, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleDelete removes a wish list and every gift on it.
//
// HTTP: DELETE /api/wishlists/{id}
func (h *WishListHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, err := actingUser(r, h.auth)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.lists.Delete(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
