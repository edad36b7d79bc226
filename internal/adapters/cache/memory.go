package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fuel_station_ledger/internal/core/ports/repositories"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryLedgerCache is a size-bounded in-process cache with per-entry expiry.
// Cached reports are shared between callers and must be treated as read-only.
type MemoryLedgerCache struct {
	entries *expirable.LRU[string, *domain.AccountLedger]

	mu          sync.Mutex
	generations map[string]int64
}

var _ portsrepo.LedgerCache = (*MemoryLedgerCache)(nil)

// NewMemoryLedgerCache creates a cache holding at most size reports for ttl each.
func NewMemoryLedgerCache(size int, ttl time.Duration) *MemoryLedgerCache {
	return &MemoryLedgerCache{
		entries:     expirable.NewLRU[string, *domain.AccountLedger](size, nil, ttl),
		generations: make(map[string]int64),
	}
}

func (c *MemoryLedgerCache) Generation(_ context.Context, accountID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[accountID], nil
}

func (c *MemoryLedgerCache) Get(_ context.Context, key portsrepo.LedgerCacheKey) (*domain.AccountLedger, bool, error) {
	ledger, ok := c.entries.Get(key.String())
	return ledger, ok, nil
}

func (c *MemoryLedgerCache) Set(_ context.Context, key portsrepo.LedgerCacheKey, ledger *domain.AccountLedger) error {
	c.entries.Add(key.String(), ledger)
	return nil
}

func (c *MemoryLedgerCache) InvalidateAccount(_ context.Context, accountID string) error {
	c.mu.Lock()
	c.generations[accountID]++
	c.mu.Unlock()

	prefix := "ledger:" + accountID + ":"
	for _, k := range c.entries.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.entries.Remove(k)
		}
	}
	return nil
}

// Lock is a no-op; concurrent computations within one process are already coalesced by the caller.
func (c *MemoryLedgerCache) Lock(_ context.Context, _ portsrepo.LedgerCacheKey) (func(), error) {
	return func() {}, nil
}
