package dto

import (
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest defines the data needed to record a transaction on an account.
type RecordTransactionRequest struct {
	Kind            domain.TransactionKind `json:"kind" binding:"required"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
	Amount          decimal.Decimal        `json:"amount" binding:"decimal_positive"`
	Reference       string                 `json:"reference" binding:"max=100"`
	Method          string                 `json:"method" binding:"max=50"`
	Description     string                 `json:"description"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	AccountID       string                 `json:"accountID"`
	Kind            domain.TransactionKind `json:"kind"`
	TransactionDate time.Time              `json:"transactionDate"`
	Amount          decimal.Decimal        `json:"amount"`
	Reference       string                 `json:"reference,omitempty"`
	Method          string                 `json:"method,omitempty"`
	Description     string                 `json:"description,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
}

// ListTransactionsParams defines query parameters for listing an account's transactions.
type ListTransactionsParams struct {
	FromDate string `form:"fromDate" binding:"required,datetime=2006-01-02"`
	ToDate   string `form:"toDate" binding:"required,datetime=2006-01-02"`
}

// ListTransactionsResponse wraps the transactions of an account.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		Kind:            txn.Kind,
		TransactionDate: txn.TransactionDate,
		Amount:          txn.Amount,
		Reference:       txn.Reference,
		Method:          txn.Method,
		Description:     txn.Description,
		CreatedAt:       txn.CreatedAt,
		CreatedBy:       txn.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
