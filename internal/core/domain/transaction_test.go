package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedgerSubject_IsValid(t *testing.T) {
	for _, s := range domain.AllSubjects {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, domain.LedgerSubject("NOZZLE").IsValid())
	assert.False(t, domain.LedgerSubject("").IsValid())
}

func TestTransaction_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		tx      domain.Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid bill",
			tx: domain.Transaction{
				TransactionID:   "txn_123",
				AccountID:       "acc_123",
				Kind:            domain.KindBill,
				TransactionDate: now,
				Amount:          decimal.NewFromFloat(1250.50),
				Reference:       "INV-001",
			},
			wantErr: false,
		},
		{
			name: "missing account",
			tx: domain.Transaction{
				Kind:            domain.KindBill,
				TransactionDate: now,
				Amount:          decimal.NewFromInt(10),
			},
			wantErr: true,
			errMsg:  "account ID is required",
		},
		{
			name: "missing kind",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				TransactionDate: now,
				Amount:          decimal.NewFromInt(10),
			},
			wantErr: true,
			errMsg:  "transaction kind is required",
		},
		{
			name: "missing date",
			tx: domain.Transaction{
				AccountID: "acc_123",
				Kind:      domain.KindPayment,
				Amount:    decimal.NewFromInt(10),
			},
			wantErr: true,
			errMsg:  "transaction date is required",
		},
		{
			name: "zero amount",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Kind:            domain.KindPayment,
				TransactionDate: now,
				Amount:          decimal.Zero,
			},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name: "negative amount",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Kind:            domain.KindTankRemoval,
				TransactionDate: now,
				Amount:          decimal.NewFromInt(-5),
			},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
