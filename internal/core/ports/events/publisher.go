package events

import (
	"context"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
)

// TransactionPublisher announces recorded transactions to downstream consumers.
type TransactionPublisher interface {
	PublishTransactionRecorded(ctx context.Context, event domain.TransactionRecordedEvent) error
	Close() error
}
