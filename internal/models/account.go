package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the row shape of the ledger_accounts table.
type Account struct {
	AccountID          string          `db:"account_id"`
	Subject            string          `db:"subject"`
	Name               string          `db:"name"`
	Description        string          `db:"description"`
	OpeningBalance     decimal.Decimal `db:"opening_balance"`
	OpeningBalanceDate time.Time       `db:"opening_balance_date"`
	IsActive           bool            `db:"is_active"`
	AuditFields
}
