package services

import (
	"context"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
)

// LedgerSvc produces ledger reports.
type LedgerSvc interface {
	// GetAccountLedger returns the merged ledger of an account for the calendar days from..to.
	GetAccountLedger(ctx context.Context, accountID string, from, to time.Time) (*domain.AccountLedger, error)

	// ListBalances returns the balance of every active account of a subject as of the end of asOf.
	ListBalances(ctx context.Context, subject domain.LedgerSubject, asOf time.Time) ([]domain.AccountBalance, error)
}
