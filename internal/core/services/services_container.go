package services

import (
	"github.com/SscSPs/fuel_station_ledger/internal/core/ports/events"
	portsrepo "github.com/SscSPs/fuel_station_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fuel_station_ledger/internal/core/ports/services"
	"github.com/SscSPs/fuel_station_ledger/internal/platform/config"
	"github.com/SscSPs/fuel_station_ledger/internal/platform/metrics"
)

// Infrastructure groups the outbound adapters services depend on besides repositories.
type Infrastructure struct {
	LedgerCache portsrepo.LedgerCache
	Publisher   events.TransactionPublisher
	Metrics     *metrics.Metrics
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, infra Infrastructure) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountLedgerCache(infra.LedgerCache),
		WithAccountMetrics(infra.Metrics),
	)

	container.Transaction = NewTransactionService(
		repos.AccountRepo,
		repos.TransactionRepo,
		WithTransactionLedgerCache(infra.LedgerCache),
		WithTransactionPublisher(infra.Publisher),
		WithTransactionMetrics(infra.Metrics),
	)

	container.Ledger = NewLedgerService(
		repos.AccountRepo,
		repos.TransactionRepo,
		WithLedgerCache(infra.LedgerCache),
		WithBalanceConcurrency(cfg.BalanceFetchConcurrency),
		WithLedgerMetrics(infra.Metrics),
	)

	return container
}
