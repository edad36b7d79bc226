package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSubject identifies what kind of entity a ledger account tracks.
type LedgerSubject string

const (
	Customer    LedgerSubject = "CUSTOMER"
	Supplier    LedgerSubject = "SUPPLIER"
	BankAccount LedgerSubject = "BANK_ACCOUNT"
	Tank        LedgerSubject = "TANK"
	Employee    LedgerSubject = "EMPLOYEE"
)

// AllSubjects lists every supported ledger subject.
var AllSubjects = []LedgerSubject{Customer, Supplier, BankAccount, Tank, Employee}

// IsValid reports whether s is one of the known subjects.
func (s LedgerSubject) IsValid() bool {
	for _, known := range AllSubjects {
		if s == known {
			return true
		}
	}
	return false
}

// Account is the subject of a ledger: a customer, supplier, bank account, tank or employee.
// Balances are signed; for tanks the unit is litres rather than currency.
type Account struct {
	AccountID          string          `json:"accountID"`
	Subject            LedgerSubject   `json:"subject"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	OpeningBalanceDate time.Time       `json:"openingBalanceDate"`
	IsActive           bool            `json:"isActive"`
	AuditFields
}
