package dto

import (
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new ledger account.
type CreateAccountRequest struct {
	Name               string               `json:"name" binding:"required,max=200"`
	Subject            domain.LedgerSubject `json:"subject" binding:"required,oneof=CUSTOMER SUPPLIER BANK_ACCOUNT TANK EMPLOYEE"`
	Description        string               `json:"description"`        // Optional
	OpeningBalance     decimal.Decimal      `json:"openingBalance"`     // Signed; zero when omitted
	OpeningBalanceDate *time.Time           `json:"openingBalanceDate"` // Optional, defaults to the creation day
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name               *string          `json:"name" binding:"omitempty,max=200"`
	Description        *string          `json:"description"`
	IsActive           *bool            `json:"isActive"`
	OpeningBalance     *decimal.Decimal `json:"openingBalance"`
	OpeningBalanceDate *time.Time       `json:"openingBalanceDate"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID          string               `json:"accountID"`
	Subject            domain.LedgerSubject `json:"subject"`
	Name               string               `json:"name"`
	Description        string               `json:"description"`
	OpeningBalance     decimal.Decimal      `json:"openingBalance"`
	OpeningBalanceDate time.Time            `json:"openingBalanceDate"`
	IsActive           bool                 `json:"isActive"`
	CreatedAt          time.Time            `json:"createdAt"`
	CreatedBy          string               `json:"createdBy"`
	LastUpdatedAt      time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy      string               `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          acc.AccountID,
		Subject:            acc.Subject,
		Name:               acc.Name,
		Description:        acc.Description,
		OpeningBalance:     acc.OpeningBalance,
		OpeningBalanceDate: acc.OpeningBalanceDate,
		IsActive:           acc.IsActive,
		CreatedAt:          acc.CreatedAt,
		CreatedBy:          acc.CreatedBy,
		LastUpdatedAt:      acc.LastUpdatedAt,
		LastUpdatedBy:      acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Subject   *domain.LedgerSubject `form:"subject" binding:"omitempty,oneof=CUSTOMER SUPPLIER BANK_ACCOUNT TANK EMPLOYEE"`
	Limit     int                   `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string               `form:"nextToken"`
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	NextToken *string           `json:"nextToken,omitempty"`
}
