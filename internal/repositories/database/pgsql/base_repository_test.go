package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/fuel_station_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx overrides only what BaseRepository calls.
type fakeTx struct {
	pgx.Tx
	commitErr   error
	rollbackErr error
}

func (f *fakeTx) Commit(context.Context) error   { return f.commitErr }
func (f *fakeTx) Rollback(context.Context) error { return f.rollbackErr }

func TestPgErrorCode(t *testing.T) {
	unique := &pgconn.PgError{Code: pgUniqueViolation}
	assert.Equal(t, pgUniqueViolation, pgErrorCode(unique))
	assert.Equal(t, pgForeignKeyViolation, pgErrorCode(fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgForeignKeyViolation})))
	assert.Empty(t, pgErrorCode(errors.New("plain")))
	assert.Empty(t, pgErrorCode(nil))
}

func TestBaseRepository_Rollback(t *testing.T) {
	repo := &BaseRepository{}
	ctx := context.Background()

	assert.NoError(t, repo.Rollback(ctx, &fakeTx{}))
	assert.NoError(t, repo.Rollback(ctx, &fakeTx{rollbackErr: pgx.ErrTxClosed}))

	err := repo.Rollback(ctx, &fakeTx{rollbackErr: errors.New("connection reset")})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
}

func TestBaseRepository_Commit(t *testing.T) {
	repo := &BaseRepository{}
	assert.NoError(t, repo.Commit(context.Background(), &fakeTx{}))

	err := repo.Commit(context.Background(), &fakeTx{commitErr: errors.New("serialization failure")})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "failed to commit transaction", appErr.Message)
}
