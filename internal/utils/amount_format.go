package utils

import (
	"github.com/SscSPs/fuel_station_ledger/internal/core/ledger"
	"github.com/shopspring/decimal"
)

// PrecisionForUnit returns how many decimal places amounts of a unit are shown with.
// Currency is shown in paise, tank stock to the millilitre.
func PrecisionForUnit(unit ledger.Unit) int32 {
	if unit == ledger.UnitLitres {
		return 3
	}
	return 2
}

// FormatLedgerAmount formats an amount with the fixed precision of its unit
// Example: 1234.5 litres returns "1234.500"
// Example: 99.999 currency returns "100.00"
func FormatLedgerAmount(amount decimal.Decimal, unit ledger.Unit) string {
	return amount.StringFixed(PrecisionForUnit(unit))
}

