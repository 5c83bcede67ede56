package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// newTestTokenService creates a TokenService with a fixed secret and a
// fixed clock so issuance and verification happen at chosen instants.
func newTestTokenService(t *testing.T, lifetime time.Duration, now func() time.Time) *TokenService {
	t.Helper()
	ts, err := newTokenServiceAt("test-secret-at-least-32-bytes-long!!", lifetime, now)
	if err != nil {
		t.Fatalf("newTokenServiceAt: %v", err)
	}
	return ts
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t, 15*time.Minute, time.Now)

	token, err := ts.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}

	identity, err := ts.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if identity != "alice" {
		t.Errorf("Verify() identity = %q, want %q", identity, "alice")
	}
}

func TestIssue_EmptyIdentity(t *testing.T) {
	ts := newTestTokenService(t, 15*time.Minute, time.Now)

	if _, err := ts.Issue(""); err == nil {
		t.Fatal("Issue() should reject an empty identity")
	}
}

// TestVerify_Expiry drives the clock instead of sleeping: the token is
// valid right up to issuedAt+lifetime and invalid one second after.
func TestVerify_Expiry(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := issuedAt
	ts := newTestTokenService(t, time.Hour, func() time.Time { return clock })

	token, err := ts.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Just inside the lifetime — still valid.
	clock = issuedAt.Add(time.Hour - time.Second)
	if _, err := ts.Verify(token); err != nil {
		t.Errorf("Verify() inside lifetime: error = %v", err)
	}

	// Past the lifetime — invalid, same uniform error as any other failure.
	clock = issuedAt.Add(time.Hour + time.Second)
	if _, err := ts.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() past lifetime: error = %v, want ErrInvalidToken", err)
	}
}

func TestVerify_TamperedToken(t *testing.T) {
	ts := newTestTokenService(t, 15*time.Minute, time.Now)

	token, _ := ts.Issue("alice")

	// Flip a character in the payload segment. The signature no longer
	// matches, so verification must fail.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := ts.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(tampered) error = %v, want ErrInvalidToken", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, 15*time.Minute, time.Now)
	verifier, err := NewTokenService("a-completely-different-secret-key!!!", 15*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, _ := issuer.Issue("alice")
	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() with wrong secret: error = %v, want ErrInvalidToken", err)
	}
}

func TestVerify_GarbageInput(t *testing.T) {
	ts := newTestTokenService(t, 15*time.Minute, time.Now)

	for _, bad := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := ts.Verify(bad); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q) error = %v, want ErrInvalidToken", bad, err)
		}
	}
}

// TestShortSecret_TokensInteroperate: two services configured with the same
// short secret must derive the same padded key, so one can verify tokens
// the other issued.
func TestShortSecret_TokensInteroperate(t *testing.T) {
	a, err := NewTokenService("short", 15*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService(short secret): %v", err)
	}
	b, err := NewTokenService("short", 15*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService(short secret): %v", err)
	}

	token, err := a.Issue("bob")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	identity, err := b.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if identity != "bob" {
		t.Errorf("identity = %q, want %q", identity, "bob")
	}
}

// =========================================================================
// KEY DERIVATION TESTS
// =========================================================================

func TestDeriveSigningKey_ShortSecretPadded(t *testing.T) {
	secret := "short"
	key := deriveSigningKey(secret)

	if len(key) != minKeySize {
		t.Fatalf("len(key) = %d, want %d", len(key), minKeySize)
	}

	// The secret's own bytes come first, untouched.
	if string(key[:len(secret)]) != secret {
		t.Errorf("key prefix = %q, want %q", key[:len(secret)], secret)
	}

	// The tail follows the fixed (i*7+13) mod 256 pattern.
	for i := len(secret); i < minKeySize; i++ {
		want := byte((i*7 + 13) % 256)
		if key[i] != want {
			t.Errorf("key[%d] = %d, want %d", i, key[i], want)
		}
	}
}

func TestDeriveSigningKey_LongSecretUnchanged(t *testing.T) {
	secret := strings.Repeat("x", 40)
	key := deriveSigningKey(secret)

	if string(key) != secret {
		t.Errorf("long secret must be used as-is, got %d-byte key", len(key))
	}
}

func TestDeriveSigningKey_Deterministic(t *testing.T) {
	k1 := deriveSigningKey("abc")
	k2 := deriveSigningKey("abc")
	if string(k1) != string(k2) {
		t.Error("deriveSigningKey must be deterministic for the same secret")
	}
}
