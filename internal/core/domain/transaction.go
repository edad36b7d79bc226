package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the sub-kind discriminator of a transaction (bill, payment, tank addition...).
type TransactionKind string

const (
	KindBill            TransactionKind = "BILL"
	KindSalesmanBill    TransactionKind = "SALESMAN_BILL"
	KindPayment         TransactionKind = "PAYMENT"
	KindSalesmanPayment TransactionKind = "SALESMAN_PAYMENT"
	KindPurchase        TransactionKind = "PURCHASE"
	KindSupplierPayment TransactionKind = "SUPPLIER_PAYMENT"
	KindDeposit         TransactionKind = "DEPOSIT"
	KindWithdrawal      TransactionKind = "WITHDRAWAL"
	KindTankAddition    TransactionKind = "TANK_ADDITION"
	KindTankRemoval     TransactionKind = "TANK_REMOVAL"
	KindSalary          TransactionKind = "SALARY"
	KindSalaryPayment   TransactionKind = "SALARY_PAYMENT"
	KindAdvance         TransactionKind = "ADVANCE"
)

// Direction says whether a transaction increases (credit) or decreases (debit) the ledger balance.
type Direction string

const (
	Credit Direction = "CREDIT"
	Debit  Direction = "DEBIT"
)

// Transaction is a dated financial or quantity event affecting one ledger account.
// Transactions are immutable once recorded.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	Kind            TransactionKind `json:"kind"`
	TransactionDate time.Time       `json:"transactionDate"`
	Amount          decimal.Decimal `json:"amount"`    // Always positive; direction comes from Kind
	Reference       string          `json:"reference"` // Invoice / slip number
	Method          string          `json:"method"`    // Cash, cheque, UPI... (payments only)
	Description     string          `json:"description"`
	AuditFields
}

// Validate checks the invariants a transaction must satisfy before it can be recorded.
func (t *Transaction) Validate() error {
	if t.AccountID == "" {
		return fmt.Errorf("account ID is required")
	}
	if t.Kind == "" {
		return fmt.Errorf("transaction kind is required")
	}
	if t.TransactionDate.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}
