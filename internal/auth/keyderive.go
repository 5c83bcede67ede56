package auth

// minKeySize is the minimum HMAC-SHA256 key length in bytes. HS256 keys
// shorter than the hash output (32 bytes) weaken the MAC, so secrets below
// this size are padded up to it.
const minKeySize = 32

// deriveSigningKey turns the configured secret into an HS256 signing key.
//
// If the secret is already minKeySize bytes or longer, its raw bytes are
// used directly. Shorter secrets are copied into a 32-byte buffer and every
// remaining index i is filled with (i*7+13) mod 256.
//
// This is a deliberate accommodation for short configured secrets, NOT a
// proper key-derivation function: the padding tail is a fixed public
// pattern, so a padded key has no more entropy than the secret it came
// from. It exists so a short secret fails loudly at the "weak key" level
// rather than silently at the JWT library level. Kept isolated here so it
// can be swapped for a real KDF (HKDF, scrypt) without touching token
// issuance or verification.
func deriveSigningKey(secret string) []byte {
	raw := []byte(secret)
	if len(raw) >= minKeySize {
		return raw
	}

	key := make([]byte, minKeySize)
	copy(key, raw)
	for i := len(raw); i < minKeySize; i++ {
		key[i] = byte((i*7 + 13) % 256)
	}
	return key
}
