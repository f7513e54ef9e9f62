package service

import (
	"time"

	"github.com/crewdeskhq/crewdesk/internal/auth/domain"
	"github.com/crewdeskhq/crewdesk/pkg/cryptox"
	"github.com/crewdeskhq/crewdesk/pkg/jwtx"
)

// TokenService issues and verifies the bearer tokens handed to clients.
// Access tokens are signed JWTs; invite tokens are opaque random strings
// whose fingerprint is what gets persisted.
type TokenService struct {
	Signer    jwtx.Signer
	Verifier  jwtx.Verifier
	Issuer    string
	AccessTTL time.Duration
}

// IssueAccessToken mints a signed access token for the account.
func (s *TokenService) IssueAccessToken(a domain.Account) (string, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(
		a.ID, a.Email, a.Name, a.Role.String(),
		ttl, s.Issuer, time.Now().UTC(),
	)
	return s.Signer.Sign(claims)
}

// VerifyAccessToken validates signature, expiry and issuer, returning the
// embedded claims.
func (s *TokenService) VerifyAccessToken(token string) (jwtx.Claims, error) {
	return s.Verifier.Verify(token)
}

// DecodeAccessToken parses a token without verifying its signature. Nil on
// malformed input. Never used for authorization decisions.
func (s *TokenService) DecodeAccessToken(token string) *jwtx.Claims {
	return jwtx.Decode(token)
}

// NewInviteToken generates an opaque invite token and its fingerprint.
// The raw token goes in the email; only the fingerprint is stored.
func (s *TokenService) NewInviteToken() (token, fingerprint string, err error) {
	token, err = cryptox.GenerateToken(cryptox.DefaultTokenBytes)
	if err != nil {
		return "", "", err
	}
	return token, cryptox.FingerprintToken(token), nil
}
