package service

import (
	"context"
	"time"

	"github.com/crewdeskhq/crewdesk/internal/auth/domain"
	"github.com/crewdeskhq/crewdesk/internal/auth/store"
	"github.com/crewdeskhq/crewdesk/pkg/cryptox"
)

// DefaultOtpTTL is how long a signup verification code stays valid.
const DefaultOtpTTL = 10 * time.Minute

// OtpService manages the short-lived numeric codes used for email
// verification. Codes are stored bcrypt-hashed; issuing a new one replaces
// any previous code for the account.
type OtpService struct {
	Store      store.Store
	Length     int
	TTL        time.Duration
	BcryptCost int
}

// Issue generates a fresh code for the account, persists its hash and
// expiry, and returns the plaintext code for delivery.
func (s *OtpService) Issue(ctx context.Context, accountID string) (string, error) {
	length := s.Length
	if length <= 0 {
		length = cryptox.DefaultOTPLength
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultOtpTTL
	}

	otp, err := cryptox.GenerateOTP(length)
	if err != nil {
		return "", err
	}

	hash, err := cryptox.HashSecret(otp, s.BcryptCost)
	if err != nil {
		return "", err
	}

	expiry := time.Now().UTC().Add(ttl)
	if err := s.Store.Accounts().SetOtp(ctx, accountID, hash, expiry); err != nil {
		return "", err
	}
	return otp, nil
}

// Check reports whether the submitted code matches the account's live
// challenge. Expired or absent challenges never match.
func (s *OtpService) Check(a domain.Account, otp string) bool {
	if !a.HasLiveChallenge(time.Now().UTC()) {
		return false
	}
	return cryptox.VerifySecret(otp, a.OtpHash)
}
