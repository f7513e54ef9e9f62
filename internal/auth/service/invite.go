package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/crewdeskhq/crewdesk/internal/auth/domain"
	"github.com/crewdeskhq/crewdesk/internal/auth/mailer"
	"github.com/crewdeskhq/crewdesk/internal/auth/store"
	"github.com/crewdeskhq/crewdesk/pkg/cryptox"
	"github.com/crewdeskhq/crewdesk/pkg/slogx"
)

// DefaultInviteTTL is how long an invite link stays usable.
const DefaultInviteTTL = 24 * time.Hour

// InviteService manages the invite-and-accept onboarding flow. The raw
// invite token only ever exists in the email link; the store holds its
// SHA-256 fingerprint.
type InviteService struct {
	Store      store.Store
	Mailer     mailer.Sender
	Tokens     *TokenService
	BaseURL    string
	InviteTTL  time.Duration
	BcryptCost int
}

// InviteUser creates or refreshes an invitation for the email address and
// sends the accept link. Re-inviting an address replaces the previous
// token and expiry. Defaults the role to MEMBER when unset.
//
// Like signup, the store write is not rolled back when the email fails;
// that surfaces as ErrEmailDelivery.
func (s *InviteService) InviteUser(ctx context.Context, email, name string, role domain.Role) error {
	log := slogx.FromContext(ctx)

	email = normalizeEmail(email)
	if email == "" {
		return ErrValidation
	}
	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		return ErrValidation
	}

	token, fingerprint, err := s.Tokens.NewInviteToken()
	if err != nil {
		return err
	}

	ttl := s.InviteTTL
	if ttl <= 0 {
		ttl = DefaultInviteTTL
	}
	expiry := time.Now().UTC().Add(ttl)

	account, err := s.Store.Accounts().UpsertInviteByEmail(
		ctx, email, strings.TrimSpace(name), role, fingerprint, expiry)
	if err != nil {
		log.Error("failed to upsert invite", slog.Any("error", err))
		return err
	}

	msg := mailer.ComposeInvite(email, s.BaseURL, token)
	if err := s.Mailer.Send(ctx, msg); err != nil {
		log.Error("invite email failed",
			slog.String("account_id", account.ID),
			slog.Any("error", err),
		)
		return ErrEmailDelivery
	}

	log.Info("invite sent",
		slog.String("account_id", account.ID),
		slog.String("role", role.String()),
	)
	return nil
}

// AcceptInvite redeems an invite token: the caller sets their password
// (and optionally a display name) and receives an access token for the
// activated account. Used and expired tokens fail identically.
func (s *InviteService) AcceptInvite(ctx context.Context, token, password, name string) (string, domain.Summary, error) {
	log := slogx.FromContext(ctx)

	if token == "" || password == "" {
		return "", domain.Summary{}, ErrValidation
	}

	fingerprint := cryptox.FingerprintToken(token)

	account, err := s.Store.Accounts().GetByInviteFingerprint(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.Summary{}, ErrInviteTokenInvalid
		}
		return "", domain.Summary{}, err
	}

	hash, err := cryptox.HashSecret(password, s.BcryptCost)
	if err != nil {
		return "", domain.Summary{}, err
	}

	name = strings.TrimSpace(name)
	if err := s.Store.Accounts().ActivateInvited(ctx, account.ID, hash, name); err != nil {
		log.Error("failed to activate invited account",
			slog.String("account_id", account.ID),
			slog.Any("error", err),
		)
		return "", domain.Summary{}, err
	}

	// Re-read so the issued token and summary reflect the activated row.
	account, err = s.Store.Accounts().GetByID(ctx, account.ID)
	if err != nil {
		return "", domain.Summary{}, err
	}

	accessToken, err := s.Tokens.IssueAccessToken(account)
	if err != nil {
		return "", domain.Summary{}, err
	}

	log.Info("invite accepted", slog.String("account_id", account.ID))
	return accessToken, account.Summarize(), nil
}
