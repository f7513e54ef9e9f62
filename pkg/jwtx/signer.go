package jwtx

import "errors"

// ErrNoSecret reports a signer constructed without key material. Token
// issuance must never silently proceed unsigned, the process should refuse
// to serve instead.
var ErrNoSecret = errors.New("jwtx: signing secret not configured")

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// NewSignerHS256 creates an HS256 signer from a shared secret.
func NewSignerHS256(secret []byte) (Signer, error) {
	return newHS256Signer(secret)
}
