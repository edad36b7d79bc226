package repositories

import (
	"context"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
)

// AccountReader defines read operations for ledger accounts
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by name, optionally filtered by subject.
	// It returns the accounts, a token for the next page, and an error.
	ListAccounts(ctx context.Context, subject *domain.LedgerSubject, limit int, nextToken *string) ([]domain.Account, *string, error)

	// ListActiveAccountsBySubject retrieves every active account of a subject.
	ListActiveAccountsBySubject(ctx context.Context, subject domain.LedgerSubject) ([]domain.Account, error)
}

// AccountWriter defines write operations for ledger accounts
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's mutable fields.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
