package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/apperrors"
	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fuel_station_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fuel_station_ledger/internal/core/ports/services"
	"github.com/SscSPs/fuel_station_ledger/internal/dto"
	"github.com/SscSPs/fuel_station_ledger/internal/platform/metrics"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerCache portsrepo.LedgerCache
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountLedgerCache lets account updates drop the account's cached ledgers.
func WithAccountLedgerCache(cache portsrepo.LedgerCache) AccountServiceOption {
	return func(s *accountService) {
		s.ledgerCache = cache
	}
}

// WithAccountMetrics counts failed ledger cache invalidations.
func WithAccountMetrics(m *metrics.Metrics) AccountServiceOption {
	return func(s *accountService) {
		s.Metrics = m
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if !req.Subject.IsValid() {
		return nil, fmt.Errorf("%w: unknown ledger subject %q", apperrors.ErrValidation, req.Subject)
	}

	now := time.Now()
	openingDate := now
	if req.OpeningBalanceDate != nil && !req.OpeningBalanceDate.IsZero() {
		openingDate = *req.OpeningBalanceDate
	}
	y, m, d := openingDate.Date()
	openingDate = time.Date(y, m, d, 0, 0, 0, 0, openingDate.Location())

	account := domain.Account{
		AccountID:          uuid.NewString(),
		Subject:            req.Subject,
		Name:               name,
		Description:        req.Description,
		OpeningBalance:     req.OpeningBalance,
		OpeningBalanceDate: openingDate,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("subject", string(account.Subject)))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("subject", string(account.Subject)))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}

	accounts, nextToken, err := s.accountRepo.ListAccounts(ctx, params.Subject, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int("limit", params.Limit))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return &dto.ListAccountsResponse{
		Accounts:  dto.ToListAccountResponse(accounts),
		NextToken: nextToken,
	}, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		if name != account.Name {
			account.Name = name
			updated = true
		}
	}
	if req.Description != nil && *req.Description != account.Description {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil && *req.IsActive != account.IsActive {
		account.IsActive = *req.IsActive
		updated = true
	}
	if req.OpeningBalance != nil && !req.OpeningBalance.Equal(account.OpeningBalance) {
		account.OpeningBalance = *req.OpeningBalance
		updated = true
	}
	if req.OpeningBalanceDate != nil && !req.OpeningBalanceDate.IsZero() && !req.OpeningBalanceDate.Equal(account.OpeningBalanceDate) {
		y, m, d := req.OpeningBalanceDate.Date()
		account.OpeningBalanceDate = time.Date(y, m, d, 0, 0, 0, 0, req.OpeningBalanceDate.Location())
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.invalidateLedgers(ctx, accountID)

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) invalidateLedgers(ctx context.Context, accountID string) {
	if s.ledgerCache == nil {
		return
	}
	if err := s.ledgerCache.InvalidateAccount(ctx, accountID); err != nil {
		s.Metrics.RecordCacheInvalidationFailure("account")
		s.LogError(ctx, err, "Failed to invalidate cached ledgers", slog.String("account_id", accountID))
	}
}

