package cache

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fuel_station_ledger/internal/core/ports/repositories"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RedisLedgerCacheTestSuite struct {
	suite.Suite
	server *miniredis.Miniredis
	client *redis.Client
	cache  *RedisLedgerCache
}

func (s *RedisLedgerCacheTestSuite) SetupTest() {
	s.server = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.server.Addr()})
	s.cache = NewRedisLedgerCache(s.client, time.Hour)
}

func (s *RedisLedgerCacheTestSuite) TearDownTest() {
	_ = s.client.Close()
}

func (s *RedisLedgerCacheTestSuite) TestRoundTripPreservesDecimals() {
	ctx := context.Background()
	key := portsrepo.LedgerCacheKey{AccountID: "tank-1", Window: "2024-05-01..2024-05-31"}
	ledger := &domain.AccountLedger{
		Account: domain.Account{AccountID: "tank-1", Subject: domain.Tank, Name: "Tank 1"},
		Entries: []domain.LedgerEntry{{
			Transaction:   domain.Transaction{TransactionID: "t-1", Kind: domain.KindTankAddition, Amount: decimal.RequireFromString("12000")},
			Direction:     domain.Credit,
			BalanceAmount: decimal.RequireFromString("17200.5"),
			DebtAmount:    decimal.RequireFromString("17200.5"),
		}},
		Summary: domain.LedgerSummary{ClosingBalance: decimal.RequireFromString("8750.25")},
	}

	s.Require().NoError(s.cache.Set(ctx, key, ledger))

	got, ok, err := s.cache.Get(ctx, key)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("8750.25", got.Summary.ClosingBalance.String())
	s.Require().Len(got.Entries, 1)
	s.Equal("17200.5", got.Entries[0].BalanceAmount.String())
	s.Equal(domain.Credit, got.Entries[0].Direction)

	s.True(s.server.Exists(key.String()))
	s.Positive(s.server.TTL(key.String()))
}

func (s *RedisLedgerCacheTestSuite) TestMissReturnsFalse() {
	got, ok, err := s.cache.Get(context.Background(), portsrepo.LedgerCacheKey{AccountID: "nope"})
	s.Require().NoError(err)
	s.False(ok)
	s.Nil(got)
}

func (s *RedisLedgerCacheTestSuite) TestInvalidateAccount() {
	ctx := context.Background()
	gen, err := s.cache.Generation(ctx, "cust-1")
	s.Require().NoError(err)
	s.Equal(int64(0), gen)

	key := portsrepo.LedgerCacheKey{AccountID: "cust-1", Generation: gen, Window: "2024-01-01..2024-01-31"}
	s.Require().NoError(s.cache.Set(ctx, key, &domain.AccountLedger{}))
	s.True(s.server.Exists(key.String()))

	s.Require().NoError(s.cache.InvalidateAccount(ctx, "cust-1"))

	s.False(s.server.Exists(key.String()))
	s.False(s.server.Exists(indexKey("cust-1")))
	gen, err = s.cache.Generation(ctx, "cust-1")
	s.Require().NoError(err)
	s.Equal(int64(1), gen)
}

func (s *RedisLedgerCacheTestSuite) TestLockIsExclusive() {
	ctx := context.Background()
	key := portsrepo.LedgerCacheKey{AccountID: "cust-1", Window: "w"}

	unlock, err := s.cache.Lock(ctx, key)
	s.Require().NoError(err)

	short, cancel := context.WithTimeout(ctx, 120*time.Millisecond)
	defer cancel()
	_, err = s.cache.Lock(short, key)
	s.Error(err, "second lock should not be granted while the first is held")

	unlock()

	unlockAgain, err := s.cache.Lock(ctx, key)
	s.Require().NoError(err)
	unlockAgain()
}

func (s *RedisLedgerCacheTestSuite) TestRedisUnavailable() {
	s.server.Close()
	_, err := s.cache.Generation(context.Background(), "cust-1")
	assert.Error(s.T(), err)
}

func TestRedisLedgerCacheTestSuite(t *testing.T) {
	suite.Run(t, new(RedisLedgerCacheTestSuite))
}

func TestLedgerCacheKeyString(t *testing.T) {
	key := portsrepo.LedgerCacheKey{AccountID: "a-1", Generation: 7, Window: "2024-05-01..2024-05-31"}
	require.Equal(t, "ledger:a-1:7:2024-05-01..2024-05-31", key.String())
}
