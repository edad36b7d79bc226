package utils

import (
	"testing"

	"github.com/SscSPs/fuel_station_ledger/internal/core/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatLedgerAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		unit   ledger.Unit
		want   string
	}{
		{"currency rounds to paise", "99.999", ledger.UnitCurrency, "100.00"},
		{"currency pads", "1500", ledger.UnitCurrency, "1500.00"},
		{"negative currency", "-42.5", ledger.UnitCurrency, "-42.50"},
		{"litres keep millilitres", "8750.25", ledger.UnitLitres, "8750.250"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLedgerAmount(decimal.RequireFromString(tt.amount), tt.unit))
		})
	}
}

