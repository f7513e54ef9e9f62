package service

import (
	"context"
	"errors"

	"github.com/crewdeskhq/crewdesk/internal/auth/domain"
	"github.com/crewdeskhq/crewdesk/internal/auth/store"
)

// UserService exposes read-only account queries for authenticated callers.
type UserService struct {
	Store store.Store
}

// CurrentUser resolves the authenticated account id to its summary. An
// account deleted after the token was issued yields ErrAccountNotFound.
func (s *UserService) CurrentUser(ctx context.Context, accountID string) (domain.Summary, error) {
	account, err := s.Store.Accounts().GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Summary{}, ErrAccountNotFound
		}
		return domain.Summary{}, err
	}
	return account.Summarize(), nil
}

// ListUsers returns summaries of every account, oldest first. Pending
// invitees appear alongside active accounts.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.Summary, error) {
	accounts, err := s.Store.Accounts().List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.Summary, 0, len(accounts))
	for _, a := range accounts {
		summaries = append(summaries, a.Summarize())
	}
	return summaries, nil
}
