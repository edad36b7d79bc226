package events

import (
	"context"
	"log/slog"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	portsevents "github.com/SscSPs/fuel_station_ledger/internal/core/ports/events"
)

// LogPublisher records events in the application log. It is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ portsevents.TransactionPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishTransactionRecorded(ctx context.Context, event domain.TransactionRecordedEvent) error {
	p.logger.DebugContext(ctx, "Transaction recorded event",
		slog.String("event_type", EventTypeTransactionRecorded),
		slog.String("event_id", event.EventID),
		slog.String("transaction_id", event.TransactionID),
		slog.String("account_id", event.AccountID),
		slog.String("kind", string(event.Kind)),
		slog.String("amount", event.Amount.String()))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
