package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/crewdeskhq/crewdesk/internal/auth/domain"
	"github.com/crewdeskhq/crewdesk/internal/auth/mailer"
	"github.com/crewdeskhq/crewdesk/internal/auth/store"
	"github.com/crewdeskhq/crewdesk/pkg/cryptox"
	"github.com/crewdeskhq/crewdesk/pkg/idx"
	"github.com/crewdeskhq/crewdesk/pkg/slogx"
)

// AuthService implements self-service registration and login.
type AuthService struct {
	Store      store.Store
	Mailer     mailer.Sender
	Tokens     *TokenService
	Otp        *OtpService
	BcryptCost int
}

// Signup registers a new account, stores a hashed verification code and
// emails the plaintext code. Self-registered accounts are owners.
//
// The account is committed before the email goes out: a delivery failure
// surfaces as ErrEmailDelivery but never rolls the account back.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (domain.Summary, error) {
	log := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return domain.Summary{}, ErrValidation
	}

	hash, err := cryptox.HashSecret(password, s.BcryptCost)
	if err != nil {
		return domain.Summary{}, err
	}

	account := domain.Account{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleOwner,
	}

	if err := s.Store.Accounts().Create(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Summary{}, ErrEmailTaken
		}
		log.Error("failed to create account", slog.Any("error", err))
		return domain.Summary{}, err
	}

	otp, err := s.Otp.Issue(ctx, account.ID)
	if err != nil {
		log.Error("failed to issue signup otp", slog.Any("error", err))
		return domain.Summary{}, err
	}

	msg := mailer.ComposeSignupOtp(account.Email, account.Name, otp)
	if err := s.Mailer.Send(ctx, msg); err != nil {
		log.Error("signup otp email failed",
			slog.String("account_id", account.ID),
			slog.Any("error", err),
		)
		return account.Summarize(), ErrEmailDelivery
	}

	log.Info("account registered", slog.String("account_id", account.ID))
	return account.Summarize(), nil
}

// VerifySignupOtp checks the emailed code and, on success, marks the
// account verified and issues an access token. The code is not consumed:
// it stays valid until its expiry.
func (s *AuthService) VerifySignupOtp(ctx context.Context, email, otp string) (string, domain.Summary, error) {
	log := slogx.FromContext(ctx)

	email = normalizeEmail(email)
	if email == "" || otp == "" {
		return "", domain.Summary{}, ErrValidation
	}

	account, err := s.Store.Accounts().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.Summary{}, ErrAccountNotFound
		}
		return "", domain.Summary{}, err
	}

	if !s.Otp.Check(account, otp) {
		log.Info("otp verification failed", slog.String("account_id", account.ID))
		return "", domain.Summary{}, ErrInvalidOtp
	}

	if err := s.Store.Accounts().SetVerified(ctx, account.ID); err != nil {
		return "", domain.Summary{}, err
	}

	token, err := s.Tokens.IssueAccessToken(account)
	if err != nil {
		return "", domain.Summary{}, err
	}

	log.Info("account verified", slog.String("account_id", account.ID))
	return token, account.Summarize(), nil
}

// Login authenticates by email and password and issues an access token.
// Unknown email and wrong password return the same error so callers cannot
// probe for registered addresses. Verification status is not required.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.Summary, error) {
	log := slogx.FromContext(ctx)

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.Summary{}, ErrValidation
	}

	account, err := s.Store.Accounts().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn comparable time so the two failure paths look alike.
			cryptox.VerifySecret(password, dummyHash)
			return "", domain.Summary{}, ErrInvalidCredentials
		}
		return "", domain.Summary{}, err
	}

	if account.PasswordHash == "" || !cryptox.VerifySecret(password, account.PasswordHash) {
		log.Info("login failed", slog.String("account_id", account.ID))
		return "", domain.Summary{}, ErrInvalidCredentials
	}

	token, err := s.Tokens.IssueAccessToken(account)
	if err != nil {
		return "", domain.Summary{}, err
	}

	log.Info("login succeeded", slog.String("account_id", account.ID))
	return token, account.Summarize(), nil
}

// dummyHash is a bcrypt hash of an unguessable throwaway value, used to
// equalize timing on the unknown-email login path.
var dummyHash = func() string {
	h, err := cryptox.HashSecret(idx.New().String(), cryptox.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
