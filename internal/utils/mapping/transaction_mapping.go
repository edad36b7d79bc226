package mapping

import (
	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	"github.com/SscSPs/fuel_station_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Empty optional text fields are stored as NULL.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		Kind:            string(d.Kind),
		TransactionDate: d.TransactionDate,
		Amount:          d.Amount,
		Reference:       nullableString(d.Reference),
		Method:          nullableString(d.Method),
		Description:     nullableString(d.Description),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		Kind:            domain.TransactionKind(m.Kind),
		TransactionDate: m.TransactionDate,
		Amount:          m.Amount,
		Reference:       stringOrEmpty(m.Reference),
		Method:          stringOrEmpty(m.Method),
		Description:     stringOrEmpty(m.Description),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
