package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fuel_ledger"

// Metrics holds the prometheus collectors of the ledger service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Ledger metrics
	LedgerMergeDuration  *prometheus.HistogramVec
	LedgerEntriesMerged  *prometheus.CounterVec
	LedgerCacheRequests  *prometheus.CounterVec
	LedgerCacheStale     *prometheus.CounterVec
	TransactionsRecorded *prometheus.CounterVec

	// Event publishing
	EventsPublished     *prometheus.CounterVec
	CircuitBreakerState *prometheus.GaugeVec
}

// New creates a Metrics instance backed by its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	m.HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	m.LedgerMergeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ledger_merge_duration_seconds",
			Help:      "Time spent merging transaction collections into a ledger",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"subject"},
	)

	m.LedgerEntriesMerged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_entries_merged_total",
			Help:      "Total number of transactions placed into ledgers",
		},
		[]string{"subject"},
	)

	m.LedgerCacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_cache_requests_total",
			Help:      "Ledger cache lookups by result",
		},
		[]string{"result"},
	)

	m.LedgerCacheStale = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_cache_invalidation_failures_total",
			Help:      "Writes whose cached ledgers could not be invalidated and may be served stale until expiry",
		},
		[]string{"source"},
	)

	m.TransactionsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_recorded_total",
			Help:      "Total number of transactions recorded",
		},
		[]string{"subject", "kind"},
	)

	m.EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of events published",
		},
		[]string{"topic", "status"},
	)

	m.CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.LedgerMergeDuration,
		m.LedgerEntriesMerged,
		m.LedgerCacheRequests,
		m.LedgerCacheStale,
		m.TransactionsRecorded,
		m.EventsPublished,
		m.CircuitBreakerState,
	)

	return m
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) IncrementHTTPRequestsInFlight() {
	if m == nil {
		return
	}
	m.HTTPRequestsInFlight.Inc()
}

func (m *Metrics) DecrementHTTPRequestsInFlight() {
	if m == nil {
		return
	}
	m.HTTPRequestsInFlight.Dec()
}

// RecordLedgerMerge records one merge of an account's collections.
func (m *Metrics) RecordLedgerMerge(subject string, entries int, duration time.Duration) {
	if m == nil {
		return
	}
	m.LedgerMergeDuration.WithLabelValues(subject).Observe(duration.Seconds())
	m.LedgerEntriesMerged.WithLabelValues(subject).Add(float64(entries))
}

// RecordCacheLookup records a ledger cache hit or miss.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.LedgerCacheRequests.WithLabelValues(result).Inc()
}

// RecordCacheInvalidationFailure counts a write whose cached ledgers were left in place.
func (m *Metrics) RecordCacheInvalidationFailure(source string) {
	if m == nil {
		return
	}
	m.LedgerCacheStale.WithLabelValues(source).Inc()
}

func (m *Metrics) RecordTransaction(subject, kind string) {
	if m == nil {
		return
	}
	m.TransactionsRecorded.WithLabelValues(subject, kind).Inc()
}

// RecordEventPublish records the outcome of publishing one event.
func (m *Metrics) RecordEventPublish(topic string, success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "failure"
	}
	m.EventsPublished.WithLabelValues(topic, status).Inc()
}

// SetCircuitBreakerState records the state of a circuit breaker.
func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	if m == nil {
		return
	}
	m.CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
