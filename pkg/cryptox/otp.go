package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultOTPLength is the number of digits in a signup verification code.
const DefaultOTPLength = 6

// GenerateOTP returns a zero-padded numeric code of the given length,
// sampled uniformly over [0, 10^length) from crypto/rand. A general-purpose
// PRNG is not acceptable here: the code gates account verification.
func GenerateOTP(length int) (string, error) {
	if length <= 0 || length > 18 {
		return "", fmt.Errorf("cryptox: otp length must be in 1..18, got %d", length)
	}

	space := big.NewInt(10)
	space.Exp(space, big.NewInt(int64(length)), nil)

	n, err := rand.Int(rand.Reader, space)
	if err != nil {
		return "", fmt.Errorf("cryptox: generate otp: %w", err)
	}

	return fmt.Sprintf("%0*d", length, n), nil
}
