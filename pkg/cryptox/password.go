package cryptox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt cost bounds. DefaultCost matches what the rest of the stack expects
// for interactive logins; anything above MaxCost takes seconds per hash.
const (
	DefaultCost = 10
	MinCost     = bcrypt.MinCost
	MaxCost     = 15
)

// HashSecret hashes a password or OTP with bcrypt at the given cost.
// A cost outside [MinCost, MaxCost] falls back to DefaultCost.
func HashSecret(secret string, cost int) (string, error) {
	if cost < MinCost || cost > MaxCost {
		cost = DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash secret: %w", err)
	}
	return string(h), nil
}

// VerifySecret reports whether secret matches the bcrypt hash. It fails
// closed: a malformed hash, an empty hash, or any comparison error all
// return false. bcrypt's comparison is constant-time over the digest.
func VerifySecret(secret, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
