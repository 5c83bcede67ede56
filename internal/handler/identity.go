package handler

import (
	"net/http"

	"github.com/sakif/wishlist/internal/apperror"
	"github.com/sakif/wishlist/internal/auth"
	"github.com/sakif/wishlist/internal/model"
	"github.com/sakif/wishlist/internal/service"
)

// actingUser resolves the request's token identity to its account.
//
// The middleware has already verified the token and stored the identity
// (username) in the context; this turns it into the account whose ID the
// handlers pass EXPLICITLY into every ownership-domain call. No service
// ever reaches into ambient request state to find out who is acting.
func actingUser(r *http.Request, authSvc *service.AuthService) (*model.User, error) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return nil, apperror.Unauthorized("valid authentication required")
	}
	return authSvc.ResolveIdentity(r.Context(), identity)
}
