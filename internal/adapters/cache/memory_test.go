package cache

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fuel_station_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLedger(accountID string) *domain.AccountLedger {
	return &domain.AccountLedger{Account: domain.Account{AccountID: accountID, Subject: domain.Customer}}
}

func TestMemoryLedgerCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryLedgerCache(10, time.Minute)
	key := portsrepo.LedgerCacheKey{AccountID: "a-1", Window: "2024-05-01..2024-05-31"}

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	ledger := sampleLedger("a-1")
	require.NoError(t, c.Set(ctx, key, ledger))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, ledger, got)
}

func TestMemoryLedgerCache_InvalidateBumpsGenerationAndDropsEntries(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryLedgerCache(10, time.Minute)

	gen, err := c.Generation(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	keyA := portsrepo.LedgerCacheKey{AccountID: "a-1", Generation: gen, Window: "2024-05-01..2024-05-31"}
	keyB := portsrepo.LedgerCacheKey{AccountID: "a-10", Generation: 0, Window: "2024-05-01..2024-05-31"}
	require.NoError(t, c.Set(ctx, keyA, sampleLedger("a-1")))
	require.NoError(t, c.Set(ctx, keyB, sampleLedger("a-10")))

	require.NoError(t, c.InvalidateAccount(ctx, "a-1"))

	gen, err = c.Generation(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	_, ok, _ := c.Get(ctx, keyA)
	assert.False(t, ok, "invalidated account entries should be gone")

	_, ok, _ = c.Get(ctx, keyB)
	assert.True(t, ok, "other accounts sharing an ID prefix must survive")
}

func TestMemoryLedgerCache_EvictsBeyondSize(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryLedgerCache(2, time.Minute)

	for _, w := range []string{"w1", "w2", "w3"} {
		require.NoError(t, c.Set(ctx, portsrepo.LedgerCacheKey{AccountID: "a-1", Window: w}, sampleLedger("a-1")))
	}

	_, ok, _ := c.Get(ctx, portsrepo.LedgerCacheKey{AccountID: "a-1", Window: "w1"})
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok, _ = c.Get(ctx, portsrepo.LedgerCacheKey{AccountID: "a-1", Window: "w3"})
	assert.True(t, ok)
}

func TestMemoryLedgerCache_LockIsNoop(t *testing.T) {
	c := NewMemoryLedgerCache(1, time.Minute)
	unlock, err := c.Lock(context.Background(), portsrepo.LedgerCacheKey{AccountID: "a-1"})
	require.NoError(t, err)
	assert.NotPanics(t, unlock)
}
