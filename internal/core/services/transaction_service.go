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
	"github.com/SscSPs/fuel_station_ledger/internal/core/ports/events"
	portsrepo "github.com/SscSPs/fuel_station_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fuel_station_ledger/internal/core/ports/services"
	"github.com/SscSPs/fuel_station_ledger/internal/dto"
	"github.com/SscSPs/fuel_station_ledger/internal/platform/metrics"
	"github.com/google/uuid"
)

// transactionService implements the TransactionSvc interface
type transactionService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	txnRepo     portsrepo.TransactionRepositoryFacade
	ledgerCache portsrepo.LedgerCache
	publisher   events.TransactionPublisher
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionLedgerCache drops an account's cached ledgers whenever it receives a transaction.
func WithTransactionLedgerCache(cache portsrepo.LedgerCache) TransactionServiceOption {
	return func(s *transactionService) {
		s.ledgerCache = cache
	}
}

// WithTransactionPublisher announces recorded transactions.
func WithTransactionPublisher(publisher events.TransactionPublisher) TransactionServiceOption {
	return func(s *transactionService) {
		s.publisher = publisher
	}
}

// WithTransactionMetrics counts recorded transactions.
func WithTransactionMetrics(m *metrics.Metrics) TransactionServiceOption {
	return func(s *transactionService) {
		s.Metrics = m
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(accountRepo portsrepo.AccountReader, txnRepo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvc {
	svc := &transactionService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.TransactionSvc = (*transactionService)(nil)

func (s *transactionService) RecordTransaction(ctx context.Context, accountID string, req dto.RecordTransactionRequest, userID string) (*domain.Transaction, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account for transaction", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}

	profile, err := ledger.ProfileFor(account.Subject)
	if err != nil {
		return nil, err
	}
	if !profile.Allows(req.Kind) {
		return nil, fmt.Errorf("%w: transaction kind %q is not valid for a %s account",
			apperrors.ErrValidation, req.Kind, account.Subject)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       accountID,
		Kind:            req.Kind,
		TransactionDate: req.TransactionDate,
		Amount:          req.Amount,
		Reference:       req.Reference,
		Method:          req.Method,
		Description:     req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("account_id", accountID),
			slog.String("kind", string(txn.Kind)))
		return nil, err
	}

	s.Metrics.RecordTransaction(string(account.Subject), string(txn.Kind))

	if s.ledgerCache != nil {
		if err := s.ledgerCache.InvalidateAccount(ctx, accountID); err != nil {
			s.Metrics.RecordCacheInvalidationFailure("transaction")
			s.LogError(ctx, err, "Failed to invalidate cached ledgers", slog.String("account_id", accountID))
		}
	}

	s.publishRecorded(ctx, account, txn)

	s.LogInfo(ctx, "Transaction recorded successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", accountID),
		slog.String("kind", string(txn.Kind)))
	return &txn, nil
}

// publishRecorded emits the recorded event. The transaction is already committed, so failures are only logged.
func (s *transactionService) publishRecorded(ctx context.Context, account *domain.Account, txn domain.Transaction) {
	if s.publisher == nil {
		return
	}
	event := domain.TransactionRecordedEvent{
		EventID:       uuid.NewString(),
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		Subject:       account.Subject,
		Kind:          txn.Kind,
		Amount:        txn.Amount,
		OccurredAt:    txn.TransactionDate,
		RecordedAt:    txn.CreatedAt,
	}
	if err := s.publisher.PublishTransactionRecorded(ctx, event); err != nil {
		s.LogWarn(ctx, err, "Failed to publish transaction recorded event",
			slog.String("transaction_id", txn.TransactionID))
	}
}

func (s *transactionService) GetTransaction(ctx context.Context, accountID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	// A transaction of another account is reported as missing rather than exposed.
	if txn.AccountID != accountID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	window, err := ledger.NewWindow(from, to)
	if err != nil {
		return nil, err
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account", slog.String("account_id", accountID))
		}
		return nil, err
	}

	txns, err := s.txnRepo.ListTransactionsByAccount(ctx, accountID, window.Start, window.End)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}
