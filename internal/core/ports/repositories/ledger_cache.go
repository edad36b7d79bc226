package repositories

import (
	"context"
	"fmt"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
)

// LedgerCacheKey identifies one cached ledger report. Generation changes every time the
// account is invalidated, so reports computed before an invalidation are never served after it.
type LedgerCacheKey struct {
	AccountID  string
	Generation int64
	Window     string
}

func (k LedgerCacheKey) String() string {
	return fmt.Sprintf("ledger:%s:%d:%s", k.AccountID, k.Generation, k.Window)
}

// LedgerCache caches ledger reports per account and date window.
type LedgerCache interface {
	// Generation returns the current invalidation generation of an account.
	Generation(ctx context.Context, accountID string) (int64, error)

	// Get returns the cached report, or false when absent.
	Get(ctx context.Context, key LedgerCacheKey) (*domain.AccountLedger, bool, error)

	// Set stores a report.
	Set(ctx context.Context, key LedgerCacheKey, ledger *domain.AccountLedger) error

	// InvalidateAccount drops every report of the account.
	InvalidateAccount(ctx context.Context, accountID string) error

	// Lock serializes computation of one key across instances. The returned func releases it.
	Lock(ctx context.Context, key LedgerCacheKey) (func(), error)
}
