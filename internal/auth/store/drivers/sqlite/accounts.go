package sqlite

import (
	"context"
	"time"

	"github.com/crewdeskhq/crewdesk/internal/auth/domain"
	"github.com/crewdeskhq/crewdesk/internal/auth/store"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, name, email, password_hash, role,
	is_verified, invited, otp_hash, otp_expiry, created_at, updated_at`

func (r *accountsRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row.Scan)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	a, err := scanAccount(row.Scan)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetByInviteFingerprint(
	ctx context.Context,
	fingerprint string,
) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts
		 WHERE invited = 1 AND otp_hash = ? AND otp_expiry > ?`,
		fingerprint, time.Now().UTC())
	a, err := scanAccount(row.Scan)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) Create(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts
		 (id, name, email, password_hash, role, is_verified, invited, otp_hash, otp_expiry, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Email, mapStringNull(a.PasswordHash), a.Role.String(),
		a.IsVerified, a.Invited, mapStringNull(a.OtpHash), mapOptionalTime(a.OtpExpiry),
		now, now,
	)
	return mapConflict(err)
}

func (r *accountsRepo) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *accountsRepo) SetVerified(ctx context.Context, id string) error {
	return r.exec(ctx,
		`UPDATE accounts SET is_verified = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id)
}

func (r *accountsRepo) SetOtp(ctx context.Context, id string, otpHash string, expiry time.Time) error {
	return r.exec(ctx,
		`UPDATE accounts SET otp_hash = ?, otp_expiry = ?, updated_at = ? WHERE id = ?`,
		otpHash, expiry.UTC(), time.Now().UTC(), id)
}

func (r *accountsRepo) ClearOtp(ctx context.Context, id string) error {
	return r.exec(ctx,
		`UPDATE accounts SET otp_hash = NULL, otp_expiry = NULL, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id)
}

func (r *accountsRepo) ActivateInvited(
	ctx context.Context,
	id string,
	passwordHash string,
	name string,
) error {
	// COALESCE(NULLIF(?, ''), name) keeps the stored name when the caller
	// did not supply one. Single UPDATE so acceptance is atomic.
	return r.exec(ctx,
		`UPDATE accounts
		 SET password_hash = ?, invited = 0, otp_hash = NULL, otp_expiry = NULL,
		     name = COALESCE(NULLIF(?, ''), name), updated_at = ?
		 WHERE id = ?`,
		passwordHash, name, time.Now().UTC(), id)
}

func (r *accountsRepo) UpsertInviteByEmail(
	ctx context.Context,
	email string,
	name string,
	role domain.Role,
	fingerprint string,
	expiry time.Time,
) (domain.Account, error) {
	now := time.Now().UTC()

	// ON CONFLICT keyed by the unique email index gives us the atomic
	// update-or-create the invite flow needs. Re-inviting an existing
	// account refreshes role/name/fingerprint/expiry and re-flags it.
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO accounts
		 (id, name, email, password_hash, role, is_verified, invited, otp_hash, otp_expiry, created_at, updated_at)
		 VALUES (?, ?, ?, NULL, ?, 0, 1, ?, ?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET
		   name = COALESCE(NULLIF(excluded.name, ''), accounts.name),
		   role = excluded.role,
		   invited = 1,
		   otp_hash = excluded.otp_hash,
		   otp_expiry = excluded.otp_expiry,
		   updated_at = excluded.updated_at
		 RETURNING `+accountColumns,
		newAccountID(), name, email, role.String(), fingerprint, expiry.UTC(), now, now,
	)
	a, err := scanAccount(row.Scan)
	if err != nil {
		return domain.Account{}, err
	}
	return a, nil
}

func (r *accountsRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
