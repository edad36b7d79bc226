package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row shape of the ledger_transactions table.
// Optional text columns are nullable in the database.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	AccountID       string          `db:"account_id"`
	Kind            string          `db:"kind"`
	TransactionDate time.Time       `db:"transaction_date"`
	Amount          decimal.Decimal `db:"amount"`
	Reference       *string         `db:"reference"`
	Method          *string         `db:"method"`
	Description     *string         `db:"description"`
	AuditFields
}
