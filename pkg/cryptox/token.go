package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DefaultTokenBytes is the entropy of opaque invite/reset tokens (256 bits).
const DefaultTokenBytes = 32

// GenerateToken creates a cryptographically secure random token of byteLen
// bytes, returned hex-encoded. The raw token is handed to the recipient
// out-of-band; only its fingerprint should ever be stored.
func GenerateToken(byteLen int) (string, error) {
	if byteLen <= 0 {
		return "", fmt.Errorf("cryptox: token size must be positive, got %d", byteLen)
	}
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// FingerprintToken returns the deterministic SHA-256 digest of a token,
// hex-encoded. Storing the fingerprint lets us look a token up later
// without retaining the secret itself.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
