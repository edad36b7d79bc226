package dto

import (
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReportParams defines query parameters for the ledger report.
type LedgerReportParams struct {
	FromDate string `form:"fromDate" binding:"required,datetime=2006-01-02"`
	ToDate   string `form:"toDate" binding:"required,datetime=2006-01-02"`
	Format   string `form:"format,default=json" binding:"oneof=json xlsx"`
}

// LedgerEntryResponse is one row of the ledger report.
type LedgerEntryResponse struct {
	TransactionID   string                 `json:"transactionID"`
	Kind            domain.TransactionKind `json:"kind"`
	Direction       domain.Direction       `json:"direction"`
	TransactionDate time.Time              `json:"transactionDate"`
	Amount          decimal.Decimal        `json:"amount"`
	Reference       string                 `json:"reference,omitempty"`
	Method          string                 `json:"method,omitempty"`
	Description     string                 `json:"description,omitempty"`
	BalanceAmount   decimal.Decimal        `json:"balanceAmount"`
	DebtAmount      decimal.Decimal        `json:"debtAmount"`
}

// LedgerResponse represents the ledger report response
type LedgerResponse struct {
	Account     AccountResponse       `json:"account"`
	FromDate    string                `json:"fromDate"`
	ToDate      string                `json:"toDate"`
	Entries     []LedgerEntryResponse `json:"entries"`
	Summary     domain.LedgerSummary  `json:"summary"`
	GeneratedAt time.Time             `json:"generatedAt"`
}

// ToLedgerResponse converts a domain ledger report to a DTO response
func ToLedgerResponse(l *domain.AccountLedger) LedgerResponse {
	response := LedgerResponse{
		Account:     ToAccountResponse(&l.Account),
		FromDate:    l.FromDate.Format(time.DateOnly),
		ToDate:      l.ToDate.Format(time.DateOnly),
		Entries:     make([]LedgerEntryResponse, len(l.Entries)),
		Summary:     l.Summary,
		GeneratedAt: l.GeneratedAt,
	}
	for i, e := range l.Entries {
		response.Entries[i] = LedgerEntryResponse{
			TransactionID:   e.TransactionID,
			Kind:            e.Kind,
			Direction:       e.Direction,
			TransactionDate: e.TransactionDate,
			Amount:          e.Amount,
			Reference:       e.Reference,
			Method:          e.Method,
			Description:     e.Description,
			BalanceAmount:   e.BalanceAmount,
			DebtAmount:      e.DebtAmount,
		}
	}
	return response
}

// BalancesParams defines query parameters for the outstanding balances report.
type BalancesParams struct {
	Subject domain.LedgerSubject `form:"subject" binding:"required,oneof=CUSTOMER SUPPLIER BANK_ACCOUNT TANK EMPLOYEE"`
	AsOf    string               `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
	Format  string               `form:"format,default=json" binding:"oneof=json xlsx"`
}

// BalancesResponse represents the outstanding balances report response
type BalancesResponse struct {
	Subject  domain.LedgerSubject    `json:"subject"`
	AsOf     string                  `json:"asOf"`
	Balances []domain.AccountBalance `json:"balances"`
	Totals   struct {
		Balance decimal.Decimal `json:"balance"`
		Credit  decimal.Decimal `json:"credit"`
		Debit   decimal.Decimal `json:"debit"`
	} `json:"totals"`
}

// ToBalancesResponse converts balance rows to a DTO response, adding column totals.
func ToBalancesResponse(subject domain.LedgerSubject, asOf time.Time, rows []domain.AccountBalance) BalancesResponse {
	response := BalancesResponse{
		Subject:  subject,
		AsOf:     asOf.Format(time.DateOnly),
		Balances: rows,
	}
	if response.Balances == nil {
		response.Balances = []domain.AccountBalance{}
	}

	response.Totals.Balance = decimal.Zero
	response.Totals.Credit = decimal.Zero
	response.Totals.Debit = decimal.Zero
	for _, row := range rows {
		response.Totals.Balance = response.Totals.Balance.Add(row.Balance)
		response.Totals.Credit = response.Totals.Credit.Add(row.TotalCredit)
		response.Totals.Debit = response.Totals.Debit.Add(row.TotalDebit)
	}
	return response
}
