// Package auth provides JWT token issuance/verification and password
// hashing for the wishlist API.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. Client registers via POST /api/auth/register (no token issued)
// 2. Client logs in via POST /api/auth/login with username + password
// 3. Server verifies credentials and issues a JWT access token
// 4. Client presents the token (Authorization: Bearer) on later calls
// 5. Middleware verifies the token and puts the identity in the context
//
// The token is self-contained: subject (username), issued-at, and expiry,
// signed with HMAC-SHA256. Verification needs no database lookup — just the
// signing key. There is no revocation list and no refresh flow: a token is
// valid until its embedded expiry elapses, then the client logs in again.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single outcome for every verification failure.
//
// A malformed token, a bad signature, and an expired token all return this
// same error. Collapsing the cases is deliberate: a caller probing the API
// must not learn WHICH check failed (e.g. "signature ok but expired"
// confirms the token was once genuine).
var ErrInvalidToken = errors.New("auth: invalid token")

const tokenIssuer = "wishlist"

// TokenService issues and verifies signed, time-bounded identity tokens.
//
// The signing key is derived once from the configured secret (see
// keyderive.go). The clock is a field so tests can issue and verify at
// chosen instants instead of sleeping past real expirations.
type TokenService struct {
	key      []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenService creates a TokenService signing with a key derived from
// secret. Tokens expire lifetime after issuance.
func NewTokenService(secret string, lifetime time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("auth: JWT secret must not be empty")
	}
	if lifetime <= 0 {
		return nil, errors.New("auth: token lifetime must be positive")
	}
	return &TokenService{
		key:      deriveSigningKey(secret),
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

// newTokenServiceAt is the test constructor: same as NewTokenService but
// with an injectable clock.
func newTokenServiceAt(secret string, lifetime time.Duration, now func() time.Time) (*TokenService, error) {
	ts, err := NewTokenService(secret, lifetime)
	if err != nil {
		return nil, err
	}
	ts.now = now
	return ts, nil
}

// claims is the JWT payload. jwt.RegisteredClaims carries the standard
// fields; we use "sub" for the identity (the account's username).
type claims struct {
	jwt.RegisteredClaims
}

// Issue creates and signs a token embedding identity as the subject.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, same key signs and
// verifies. The expiry is the issue instant plus the configured lifetime.
func (s *TokenService) Issue(identity string) (string, error) {
	if identity == "" {
		return "", errors.New("auth: identity must not be empty")
	}

	now := s.now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Verify parses and checks a token string, returning the embedded identity.
//
// Checks performed: HMAC signature, expiry against the service clock,
// issuer, and signing algorithm (jwt.WithValidMethods blocks algorithm
// confusion — a token claiming "none" or an RSA method is rejected before
// the key is even consulted).
//
// Every failure maps to ErrInvalidToken. The underlying jwt error is not
// wrapped into the result on purpose — see the ErrInvalidToken doc.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.key, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", ErrInvalidToken
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.Subject == "" {
		return "", ErrInvalidToken
	}

	return c.Subject, nil
}
