package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/apperrors"
	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	"github.com/SscSPs/fuel_station_ledger/internal/core/ledger"
	portsrepo "github.com/SscSPs/fuel_station_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fuel_station_ledger/internal/core/ports/services"
	"github.com/SscSPs/fuel_station_ledger/internal/platform/metrics"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBalanceConcurrency = 8
	sharedComputeTimeout      = 30 * time.Second
)

// ledgerService implements the LedgerSvc interface
type ledgerService struct {
	BaseService
	accountRepo        portsrepo.AccountReader
	txnRepo            portsrepo.TransactionReader
	cache              portsrepo.LedgerCache
	balanceConcurrency int
	inflight           singleflight.Group
	now                func() time.Time
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerCache serves repeated ledger requests from cache.
func WithLedgerCache(cache portsrepo.LedgerCache) LedgerServiceOption {
	return func(s *ledgerService) {
		s.cache = cache
	}
}

// WithBalanceConcurrency bounds how many accounts ListBalances merges at once.
func WithBalanceConcurrency(n int) LedgerServiceOption {
	return func(s *ledgerService) {
		if n > 0 {
			s.balanceConcurrency = n
		}
	}
}

// WithLedgerMetrics records merge timings and cache hit rates.
func WithLedgerMetrics(m *metrics.Metrics) LedgerServiceOption {
	return func(s *ledgerService) {
		s.Metrics = m
	}
}

// WithLedgerClock overrides the clock used to stamp generated reports.
func WithLedgerClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(accountRepo portsrepo.AccountReader, txnRepo portsrepo.TransactionReader, options ...LedgerServiceOption) portssvc.LedgerSvc {
	svc := &ledgerService{
		accountRepo:        accountRepo,
		txnRepo:            txnRepo,
		balanceConcurrency: defaultBalanceConcurrency,
		now:                time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// GetAccountLedger builds the ledger report of one account for the calendar days from..to
func (s *ledgerService) GetAccountLedger(ctx context.Context, accountID string, from, to time.Time) (*domain.AccountLedger, error) {
	window, err := ledger.NewWindow(from, to)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account for ledger", slog.String("account_id", accountID))
		}
		return nil, err
	}

	report, err := s.ledgerFor(ctx, *account, window)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Ledger report generated successfully",
		slog.String("account_id", accountID),
		slog.String("window", window.Key()),
		slog.Int("entry_count", len(report.Entries)))
	return report, nil
}

// ListBalances reports the balance of every active account of a subject at the end of asOf
func (s *ledgerService) ListBalances(ctx context.Context, subject domain.LedgerSubject, asOf time.Time) ([]domain.AccountBalance, error) {
	if _, err := ledger.ProfileFor(subject); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListActiveAccountsBySubject(ctx, subject)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for balances", slog.String("subject", string(subject)))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	rows := make([]domain.AccountBalance, len(accounts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.balanceConcurrency)
	for i, account := range accounts {
		i, account := i, account // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			from := asOf
			if opened := account.OpeningBalanceDate; !opened.IsZero() {
				// DATE columns scan as UTC midnight; the calendar day is what counts.
				y, m, d := opened.Date()
				from = time.Date(y, m, d, 0, 0, 0, 0, asOf.Location())
				if from.After(asOf) {
					from = asOf
				}
			}
			window, err := ledger.NewWindow(from, asOf)
			if err != nil {
				return err
			}
			report, err := s.ledgerFor(gctx, account, window)
			if err != nil {
				return fmt.Errorf("account %s: %w", account.AccountID, err)
			}
			rows[i] = domain.AccountBalance{
				AccountID:   account.AccountID,
				Name:        account.Name,
				Subject:     account.Subject,
				Balance:     report.Summary.ClosingBalance,
				TotalCredit: report.Summary.CreditTillDate,
				TotalDebit:  report.Summary.DebitTillDate,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to compute balances", slog.String("subject", string(subject)))
		return nil, err
	}

	s.LogInfo(ctx, "Balances report generated successfully",
		slog.String("subject", string(subject)),
		slog.String("asOf", asOf.Format(time.DateOnly)),
		slog.Int("row_count", len(rows)))
	return rows, nil
}

// ledgerFor returns the cached report for account and window, computing it on a miss.
// Concurrent misses for the same key share one computation.
func (s *ledgerService) ledgerFor(ctx context.Context, account domain.Account, window ledger.Window) (*domain.AccountLedger, error) {
	if s.cache == nil {
		return s.compute(ctx, account, window)
	}

	generation, err := s.cache.Generation(ctx, account.AccountID)
	if err != nil {
		s.LogWarn(ctx, err, "Ledger cache unavailable, computing directly", slog.String("account_id", account.AccountID))
		return s.compute(ctx, account, window)
	}
	key := portsrepo.LedgerCacheKey{AccountID: account.AccountID, Generation: generation, Window: window.Key()}

	if cached, ok := s.lookup(ctx, key); ok {
		s.LogDebug(ctx, "Ledger served from cache", slog.String("key", key.String()))
		return cached, nil
	}

	// The shared computation outlives any single caller; each caller still stops waiting on its own ctx.
	detached := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(key.String(), func() (any, error) {
		shared, cancel := context.WithTimeout(detached, sharedComputeTimeout)
		defer cancel()

		unlock, err := s.cache.Lock(shared, key)
		if err != nil {
			s.LogWarn(shared, err, "Failed to lock ledger cache key", slog.String("key", key.String()))
			unlock = func() {}
		}
		defer unlock()

		// Another instance may have filled the key while we waited for the lock.
		if cached, ok := s.lookup(shared, key); ok {
			return cached, nil
		}

		report, err := s.compute(shared, account, window)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(shared, key, report); err != nil {
			s.LogWarn(shared, err, "Failed to store ledger in cache", slog.String("key", key.String()))
		}
		return report, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.AccountLedger), nil
	}
}

func (s *ledgerService) lookup(ctx context.Context, key portsrepo.LedgerCacheKey) (*domain.AccountLedger, bool) {
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.LogWarn(ctx, err, "Failed to read ledger cache", slog.String("key", key.String()))
		ok = false
	}
	s.Metrics.RecordCacheLookup(ok)
	return cached, ok
}

// compute fetches one collection per kind of the account's profile concurrently and merges them.
// Any failed fetch aborts the whole report.
func (s *ledgerService) compute(ctx context.Context, account domain.Account, window ledger.Window) (*domain.AccountLedger, error) {
	profile, err := ledger.ProfileFor(account.Subject)
	if err != nil {
		return nil, err
	}

	kinds := profile.Kinds()
	collections := make([][]domain.Transaction, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			txns, err := s.txnRepo.ListTransactionsByKind(gctx, account.AccountID, kind, window.End)
			if err != nil {
				return fmt.Errorf("failed to fetch %s transactions: %w", kind, err)
			}
			collections[i] = txns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger collections", slog.String("account_id", account.AccountID))
		return nil, err
	}

	started := time.Now()
	res, err := profile.MergeAccount(account, window, collections)
	if err != nil {
		s.LogError(ctx, err, "Failed to merge ledger", slog.String("account_id", account.AccountID))
		return nil, err
	}
	s.Metrics.RecordLedgerMerge(string(account.Subject), len(res.Entries), time.Since(started))

	return ledger.ToAccountLedger(account, window, res, s.now()), nil
}
