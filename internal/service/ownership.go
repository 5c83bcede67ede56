// Package service contains the business logic layer: the account registry,
// the authentication flow, and the ownership domain for wish lists and
// gifts.
//
// LAYERING (same three layers as everywhere else in this codebase):
//
//	Handler (HTTP)     → parses requests, resolves the token identity
//	Service (here)     → ownership checks, validation, orchestration
//	Repository (data)  → reads/writes SQLite
//
// Every service method that mutates state takes the acting user's account
// ID as an explicit parameter. There is no ambient "current user" — the
// identity always arrives through the call, which keeps the authorization
// decisions visible at every call site and trivially testable.
package service

import (
	"context"

	"github.com/sakif/wishlist/internal/apperror"
)

// ownerResolver resolves the account ID that owns a resource, walking the
// resource's ownership chain as far as needed (a wish list resolves in one
// step; a gift goes gift → wish list → owner).
type ownerResolver func(ctx context.Context) (string, error)

// requireOwner runs the resolver and fails with Forbidden unless the
// acting user is the resolved owner.
//
// Every mutating operation in the ownership domain funnels through this
// one predicate. The alternative — each operation re-implementing "load
// parent chain, compare owner id" — is exactly the kind of duplicated
// security logic that drifts apart one bugfix at a time.
//
// Resolver errors (usually NotFound for a vanished parent) propagate
// unchanged: "the resource's owner cannot be determined" is a different
// failure than "you are not the owner" and must not be masked as
// Forbidden.
func requireOwner(ctx context.Context, actingUserID, message string, resolve ownerResolver) error {
	ownerID, err := resolve(ctx)
	if err != nil {
		return err
	}
	if ownerID != actingUserID {
		return apperror.Forbidden(message)
	}
	return nil
}
