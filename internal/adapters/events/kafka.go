package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	portsevents "github.com/SscSPs/fuel_station_ledger/internal/core/ports/events"
	"github.com/SscSPs/fuel_station_ledger/internal/platform/metrics"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
)

const (
	EventTypeTransactionRecorded = "ledger.transaction.recorded"
	eventSource                  = "fuel-station-ledger"
)

// ErrCircuitOpen is returned while the broker is considered unavailable.
var ErrCircuitOpen = errors.New("event publishing suspended: circuit breaker open")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// BreakerConfig tunes when publishing stops trying the broker.
type BreakerConfig struct {
	MaxRequests           uint32        // Requests allowed through while half-open
	Interval              time.Duration // Window after which closed-state counts reset
	Timeout               time.Duration // Time spent open before probing again
	FailureThreshold      uint32        // Consecutive failures that trip the breaker
	FailureRatioThreshold float64
	MinRequestsToTrip     uint32
}

// DefaultBreakerConfig returns the settings used for the transaction topic.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:           5,
		Interval:              time.Minute,
		Timeout:               30 * time.Second,
		FailureThreshold:      5,
		FailureRatioThreshold: 0.5,
		MinRequestsToTrip:     10,
	}
}

// KafkaPublisher writes transaction events to a kafka topic behind a circuit breaker.
type KafkaPublisher struct {
	writer  messageWriter
	topic   string
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Metrics
	logger  *slog.Logger
}

var _ portsevents.TransactionPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a publisher writing synchronously to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, m *metrics.Metrics, logger *slog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return newKafkaPublisher(writer, topic, DefaultBreakerConfig(), m, logger)
}

func newKafkaPublisher(writer messageWriter, topic string, cfg BreakerConfig, m *metrics.Metrics, logger *slog.Logger) *KafkaPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	p := &KafkaPublisher{
		writer:  writer,
		topic:   topic,
		metrics: m,
		logger:  logger,
	}

	p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "kafka-" + topic,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= cfg.FailureThreshold {
				return true
			}
			if counts.Requests >= cfg.MinRequestsToTrip {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return failureRatio >= cfg.FailureRatioThreshold
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			m.SetCircuitBreakerState(name, int(to))
		},
	})

	return p
}

// PublishTransactionRecorded writes one event keyed by account ID so an account's events stay ordered.
func (p *KafkaPublisher) PublishTransactionRecorded(ctx context.Context, event domain.TransactionRecordedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.AccountID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "ce-type", Value: []byte(EventTypeTransactionRecorded)},
			{Key: "ce-source", Value: []byte(eventSource)},
			{Key: "ce-id", Value: []byte(event.EventID)},
			{Key: "ce-time", Value: []byte(event.RecordedAt.Format(time.RFC3339))},
			{Key: "ce-subject", Value: []byte(event.Subject)},
			{Key: "content-type", Value: []byte("application/json")},
		},
		Time: event.RecordedAt,
	}

	_, err = p.breaker.Execute(func() (any, error) {
		return nil, p.writer.WriteMessages(ctx, msg)
	})
	p.metrics.RecordEventPublish(p.topic, err == nil)

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: %s", ErrCircuitOpen, p.topic)
	case err != nil:
		return fmt.Errorf("failed to publish event to topic %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
