package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
)

// TransactionReader defines read operations for ledger transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a single transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByKind retrieves one source collection of an account: every transaction
	// of the given kind dated at or before upTo, in transaction date order.
	ListTransactionsByKind(ctx context.Context, accountID string, kind domain.TransactionKind, upTo time.Time) ([]domain.Transaction, error)

	// ListTransactionsByAccount retrieves all transactions of an account within [from, to].
	ListTransactionsByAccount(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger transactions
type TransactionWriter interface {
	// SaveTransaction persists a transaction. The owning account must exist and be active.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
