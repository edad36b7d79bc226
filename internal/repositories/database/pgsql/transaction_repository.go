package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/apperrors"
	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fuel_station_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/fuel_station_ledger/internal/models"
	"github.com/SscSPs/fuel_station_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, account_id, kind, transaction_date, amount, reference, method, description,
		created_at, created_by, last_updated_at, last_updated_by`

// Rows sharing a transaction date keep the order they were recorded in.
const transactionOrder = `ORDER BY transaction_date, created_at, transaction_id`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.Kind,
		&m.TransactionDate,
		&m.Amount,
		&m.Reference,
		&m.Method,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTransaction inserts a transaction after confirming, under a share lock, that its account is active.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			slog.Default().Error("Failed to rollback transaction insert", slog.String("error", rbErr.Error()))
		}
	}()

	var isActive bool
	err = tx.QueryRow(ctx, `SELECT is_active FROM ledger_accounts WHERE account_id = $1 FOR SHARE;`, m.AccountID).Scan(&isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("account %s: %w", m.AccountID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to lock account %s: %w", m.AccountID, err)
	}
	if !isActive {
		return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, m.AccountID)
	}

	query := `
		INSERT INTO ledger_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.AccountID,
		m.Kind,
		m.TransactionDate,
		m.Amount,
		m.Reference,
		m.Method,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		case pgForeignKeyViolation:
			return fmt.Errorf("account %s: %w", m.AccountID, apperrors.ErrNotFound)
		case pgCheckViolation:
			return fmt.Errorf("%w: transaction %s violates a ledger constraint", apperrors.ErrValidation, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM ledger_transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactionsByKind retrieves one kind of transaction of an account dated at or before upTo.
func (r *PgxTransactionRepository) ListTransactionsByKind(ctx context.Context, accountID string, kind domain.TransactionKind, upTo time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM ledger_transactions
		WHERE account_id = $1 AND kind = $2 AND transaction_date <= $3
		` + transactionOrder + `;`

	return r.queryTransactions(ctx, query, accountID, string(kind), upTo)
}

// ListTransactionsByAccount retrieves all transactions of an account dated within [from, to].
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM ledger_transactions
		WHERE account_id = $1 AND transaction_date BETWEEN $2 AND $3
		` + transactionOrder + `;`

	return r.queryTransactions(ctx, query, accountID, from, to)
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]models.Transaction, 0)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return mapping.ToDomainTransactionSlice(txns), nil
}
