package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one transaction placed in the merged, date-ordered ledger together with
// the running balance after it.
type LedgerEntry struct {
	Transaction
	Direction     Direction       `json:"direction"`
	BalanceAmount decimal.Decimal `json:"balanceAmount"`
	// DebtAmount always equals BalanceAmount; some report layouts read this name.
	DebtAmount decimal.Decimal `json:"debtAmount"`
}

// KindTotal holds the per-kind totals of a ledger window.
type KindTotal struct {
	Kind      TransactionKind `json:"kind"`
	Direction Direction       `json:"direction"`
	Before    decimal.Decimal `json:"totalBefore"`
	InRange   decimal.Decimal `json:"totalInRange"`
	TillDate  decimal.Decimal `json:"totalTillDate"`
}

// LedgerSummary aggregates a ledger over the periods before, within and through the window.
type LedgerSummary struct {
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	BalanceBefore  decimal.Decimal `json:"balanceBefore"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	CreditBefore   decimal.Decimal `json:"creditBefore"`
	DebitBefore    decimal.Decimal `json:"debitBefore"`
	CreditInRange  decimal.Decimal `json:"creditInRange"`
	DebitInRange   decimal.Decimal `json:"debitInRange"`
	CreditTillDate decimal.Decimal `json:"creditTillDate"`
	DebitTillDate  decimal.Decimal `json:"debitTillDate"`
	Kinds          []KindTotal     `json:"kinds"`
}

// AccountLedger is the full ledger report for one account and date window.
type AccountLedger struct {
	Account     Account       `json:"account"`
	FromDate    time.Time     `json:"fromDate"`
	ToDate      time.Time     `json:"toDate"`
	Entries     []LedgerEntry `json:"entries"`
	Summary     LedgerSummary `json:"summary"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// AccountBalance is one row of the outstanding balances report.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	Name        string          `json:"name"`
	Subject     LedgerSubject   `json:"subject"`
	Balance     decimal.Decimal `json:"balance"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
}

// TransactionRecordedEvent is emitted after a transaction has been persisted.
type TransactionRecordedEvent struct {
	EventID       string          `json:"eventID"`
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Subject       LedgerSubject   `json:"subject"`
	Kind          TransactionKind `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurredAt"`
	RecordedAt    time.Time       `json:"recordedAt"`
}
