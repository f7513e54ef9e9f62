package store

import (
	"context"
	"errors"
	"time"

	"github.com/crewdeskhq/crewdesk/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Accounts() Accounts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Accounts is the persistence abstraction over account records. All
// operations are atomic at the single-record level; the workflow layer
// never needs multi-record transactions.
type Accounts interface {
	// GetByID returns an account by id.
	GetByID(ctx context.Context, id string) (domain.Account, error)

	// GetByEmail returns an account by its (unique) email.
	GetByEmail(ctx context.Context, email string) (domain.Account, error)

	// GetByInviteFingerprint returns the invited account whose stored
	// invite-token fingerprint matches and whose expiry is still in the
	// future. Used and expired invites are indistinguishable from absent
	// ones (both ErrNotFound).
	GetByInviteFingerprint(ctx context.Context, fingerprint string) (domain.Account, error)

	// Create inserts a new account (id provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, a domain.Account) error

	// List returns all accounts ordered by creation (oldest first).
	List(ctx context.Context) ([]domain.Account, error)

	// SetVerified flips is_verified on and bumps updated_at.
	SetVerified(ctx context.Context, id string) error

	// SetOtp stores a new hashed challenge plus expiry, unconditionally
	// replacing any prior one. Last write wins under concurrency.
	SetOtp(ctx context.Context, id string, otpHash string, expiry time.Time) error

	// ClearOtp removes the live challenge, if any.
	ClearOtp(ctx context.Context, id string) error

	// ActivateInvited completes invite acceptance in one atomic update:
	// sets the password hash, clears invited and the otp fields, and
	// updates the name when non-empty.
	ActivateInvited(ctx context.Context, id string, passwordHash string, name string) error

	// UpsertInviteByEmail creates or refreshes an invited account keyed by
	// email: role, name (when non-empty), fingerprint and expiry are
	// written, invited is set. Returns the resulting account.
	UpsertInviteByEmail(
		ctx context.Context,
		email string,
		name string,
		role domain.Role,
		fingerprint string,
		expiry time.Time,
	) (domain.Account, error)
}
