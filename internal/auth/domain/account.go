package domain

import "time"

// Account is the identity record at the heart of the service. One row per
// email address.
//
// The otp_hash/otp_expiry pair is overloaded: for self-registered accounts
// it carries the bcrypt hash of the signup OTP, for invited accounts it
// carries the SHA-256 fingerprint of the invite token. Invited=true implies
// both fields are set.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt encoded; empty only for freshly-invited accounts
	Role         Role
	IsVerified   bool
	Invited      bool
	OtpHash      string     // empty when no live challenge
	OtpExpiry    *time.Time // nil when no live challenge
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasLiveChallenge reports whether the account carries an OTP/invite
// challenge that has not yet expired at the given instant. Expiry is
// strict: a challenge is still valid at exactly its expiry time.
func (a Account) HasLiveChallenge(now time.Time) bool {
	return a.OtpHash != "" && a.OtpExpiry != nil && !now.After(*a.OtpExpiry)
}

// Summary is the caller-facing projection of an Account. It never carries
// credential material.
type Summary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Summarize builds the identity summary returned by the API.
func (a Account) Summarize() Summary {
	return Summary{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role.String(),
	}
}
