package services

import (
	"context"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	"github.com/SscSPs/fuel_station_ledger/internal/dto"
)

// TransactionSvc records and lists ledger transactions.
type TransactionSvc interface {
	// RecordTransaction validates and persists a transaction against an account.
	RecordTransaction(ctx context.Context, accountID string, req dto.RecordTransactionRequest, userID string) (*domain.Transaction, error)

	// GetTransaction returns one transaction of an account.
	GetTransaction(ctx context.Context, accountID, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns an account's transactions dated within [from, to].
	ListTransactions(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error)
}
