package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
//
// context.WithValue takes any key; with a plain string key, any package
// that knows the string could read or shadow the value. A package-private
// type means only this package can touch the identity slot.
type contextKey string

const identityKey contextKey = "identity"

// RequireAuth is a middleware that enforces authentication on protected
// routes.
//
// It reads the JWT from the Authorization header ("Bearer <token>"),
// falling back to the "token" cookie for browser clients, verifies it, and
// stores the token's identity (the username) in the request context. A
// missing or invalid token ends the request with 401.
//
// Note the 401 body is the same for "no token", "garbage token", and
// "expired token" — Verify collapses those on purpose.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := extractIdentity(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the authenticated identity (username) from
// the request context.
//
// Returns ("", false) for anonymous requests. Behind RequireAuth the value
// is always present; handlers still check the bool rather than assume.
func IdentityFromContext(ctx context.Context) (string, bool) {
	identity, ok := ctx.Value(identityKey).(string)
	return identity, ok && identity != ""
}

// extractIdentity finds the token on the request and verifies it.
func extractIdentity(r *http.Request, tokens *TokenService) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return "", ErrInvalidToken
		}
		return tokens.Verify(tokenStr)
	}

	cookie, err := r.Cookie("token")
	if err != nil {
		return "", err
	}
	return tokens.Verify(cookie.Value)
}
