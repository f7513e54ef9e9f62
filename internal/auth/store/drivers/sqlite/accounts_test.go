package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/crewdeskhq/crewdesk/internal/auth/domain"
	"github.com/crewdeskhq/crewdesk/internal/auth/store"
	"github.com/crewdeskhq/crewdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedAccount(t *testing.T, s *Store, email string) domain.Account {
	t.Helper()

	a := domain.Account{
		ID:           idx.New().String(),
		Name:         "Seed User",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
		Role:         domain.RoleOwner,
	}
	require.NoError(t, s.Accounts().Create(context.Background(), a))
	return a
}

func TestAccounts_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := seedAccount(t, s, "alice@example.com")

	byID, err := s.Accounts().GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Email, byID.Email)
	require.Equal(t, domain.RoleOwner, byID.Role)
	require.False(t, byID.IsVerified)
	require.False(t, byID.CreatedAt.IsZero())

	byEmail, err := s.Accounts().GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	_, err = s.Accounts().GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccounts_CreateDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedAccount(t, s, "dup@example.com")

	err := s.Accounts().Create(ctx, domain.Account{
		ID:    idx.New().String(),
		Email: "dup@example.com",
		Role:  domain.RoleOwner,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestAccounts_SetVerified(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := seedAccount(t, s, "verify@example.com")
	require.NoError(t, s.Accounts().SetVerified(ctx, a.ID))

	got, err := s.Accounts().GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, got.IsVerified)

	require.ErrorIs(t, s.Accounts().SetVerified(ctx, "missing-id"), store.ErrNotFound)
}

func TestAccounts_SetAndClearOtp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := seedAccount(t, s, "otp@example.com")
	expiry := time.Now().Add(10 * time.Minute)

	require.NoError(t, s.Accounts().SetOtp(ctx, a.ID, "hash-one", expiry))

	got, err := s.Accounts().GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "hash-one", got.OtpHash)
	require.NotNil(t, got.OtpExpiry)

	// A second store replaces the first (one live challenge per account).
	require.NoError(t, s.Accounts().SetOtp(ctx, a.ID, "hash-two", expiry))
	got, err = s.Accounts().GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "hash-two", got.OtpHash)

	require.NoError(t, s.Accounts().ClearOtp(ctx, a.ID))
	got, err = s.Accounts().GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Empty(t, got.OtpHash)
	require.Nil(t, got.OtpExpiry)
}

func TestAccounts_UpsertInviteByEmail_CreatesThenRefreshes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	expiry := time.Now().Add(24 * time.Hour)

	created, err := s.Accounts().UpsertInviteByEmail(
		ctx, "invitee@example.com", "Bob", domain.RoleMember, "fp-1", expiry)
	require.NoError(t, err)
	require.True(t, created.Invited)
	require.Empty(t, created.PasswordHash, "invited accounts have no password yet")
	require.Equal(t, "fp-1", created.OtpHash)
	require.Equal(t, domain.RoleMember, created.Role)

	// Re-inviting refreshes the fingerprint and role but keeps the row.
	refreshed, err := s.Accounts().UpsertInviteByEmail(
		ctx, "invitee@example.com", "", domain.RoleManager, "fp-2", expiry)
	require.NoError(t, err)
	require.Equal(t, created.ID, refreshed.ID)
	require.Equal(t, "fp-2", refreshed.OtpHash)
	require.Equal(t, domain.RoleManager, refreshed.Role)
	require.Equal(t, "Bob", refreshed.Name, "empty name keeps the stored one")
}

func TestAccounts_GetByInviteFingerprint(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	live, err := s.Accounts().UpsertInviteByEmail(
		ctx, "live@example.com", "", domain.RoleMember, "fp-live", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = s.Accounts().UpsertInviteByEmail(
		ctx, "stale@example.com", "", domain.RoleMember, "fp-stale", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	got, err := s.Accounts().GetByInviteFingerprint(ctx, "fp-live")
	require.NoError(t, err)
	require.Equal(t, live.ID, got.ID)

	_, err = s.Accounts().GetByInviteFingerprint(ctx, "fp-stale")
	require.ErrorIs(t, err, store.ErrNotFound, "expired invites are invisible")

	_, err = s.Accounts().GetByInviteFingerprint(ctx, "fp-unknown")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccounts_ActivateInvited(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	invited, err := s.Accounts().UpsertInviteByEmail(
		ctx, "activate@example.com", "Original", domain.RoleMember, "fp-act", time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, s.Accounts().ActivateInvited(ctx, invited.ID, "new-hash", "Renamed"))

	got, err := s.Accounts().GetByID(ctx, invited.ID)
	require.NoError(t, err)
	require.False(t, got.Invited)
	require.Equal(t, "new-hash", got.PasswordHash)
	require.Equal(t, "Renamed", got.Name)
	require.Empty(t, got.OtpHash)
	require.Nil(t, got.OtpExpiry)

	// The fingerprint lookup no longer matches: accepting twice fails.
	_, err = s.Accounts().GetByInviteFingerprint(ctx, "fp-act")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccounts_List(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedAccount(t, s, "first@example.com")
	seedAccount(t, s, "second@example.com")

	accounts, err := s.Accounts().List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
}

func TestStore_WithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	boom := context.Canceled
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Accounts().Create(ctx, domain.Account{
			ID:    idx.New().String(),
			Email: "tx@example.com",
			Role:  domain.RoleOwner,
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Accounts().GetByEmail(ctx, "tx@example.com")
	require.ErrorIs(t, err, store.ErrNotFound, "rolled-back insert must not persist")
}
