package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fuel_station_ledger/internal/core/ports/repositories"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL   = 30 * time.Second
	lockRetryBackoff = 50 * time.Millisecond
	lockMaxRetries   = 100
)

// RedisLedgerCache stores ledger reports as JSON in redis. Every stored key is also added to a
// per-account index set so invalidation can delete them; the generation counter makes
// invalidation effective even for reports written concurrently with it.
type RedisLedgerCache struct {
	client  *redis.Client
	locker  *redislock.Client
	ttl     time.Duration
	lockTTL time.Duration
}

var _ portsrepo.LedgerCache = (*RedisLedgerCache)(nil)

// NewRedisLedgerCache creates a cache on top of an existing redis client.
func NewRedisLedgerCache(client *redis.Client, ttl time.Duration) *RedisLedgerCache {
	return &RedisLedgerCache{
		client:  client,
		locker:  redislock.New(client),
		ttl:     ttl,
		lockTTL: defaultLockTTL,
	}
}

func generationKey(accountID string) string { return "ledger:gen:" + accountID }
func indexKey(accountID string) string { return "ledger:keys:" + accountID }
func lockKey(key portsrepo.LedgerCacheKey) string {
	return "lock:" + key.String()
}

func (c *RedisLedgerCache) Generation(ctx context.Context, accountID string) (int64, error) {
	val, err := c.client.Get(ctx, generationKey(accountID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read ledger generation: %w", err)
	}
	gen, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt ledger generation %q: %w", val, err)
	}
	return gen, nil
}

func (c *RedisLedgerCache) Get(ctx context.Context, key portsrepo.LedgerCacheKey) (*domain.AccountLedger, bool, error) {
	val, err := c.client.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached ledger: %w", err)
	}

	var ledger domain.AccountLedger
	if err := json.Unmarshal(val, &ledger); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached ledger: %w", err)
	}
	return &ledger, true, nil
}

func (c *RedisLedgerCache) Set(ctx context.Context, key portsrepo.LedgerCacheKey, ledger *domain.AccountLedger) error {
	payload, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key.String(), payload, c.ttl)
		pipe.SAdd(ctx, indexKey(key.AccountID), key.String())
		if c.ttl > 0 {
			pipe.Expire(ctx, indexKey(key.AccountID), c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store ledger: %w", err)
	}
	return nil
}

func (c *RedisLedgerCache) InvalidateAccount(ctx context.Context, accountID string) error {
	if err := c.client.Incr(ctx, generationKey(accountID)).Err(); err != nil {
		return fmt.Errorf("failed to bump ledger generation: %w", err)
	}

	keys, err := c.client.SMembers(ctx, indexKey(accountID)).Result()
	if err != nil {
		return fmt.Errorf("failed to list cached ledgers: %w", err)
	}
	keys = append(keys, indexKey(accountID))
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cached ledgers: %w", err)
	}
	return nil
}

// Lock waits for the distributed lock of key. The returned func releases it.
func (c *RedisLedgerCache) Lock(ctx context.Context, key portsrepo.LedgerCacheKey) (func(), error) {
	lock, err := c.locker.Obtain(ctx, lockKey(key), c.lockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(lockRetryBackoff), lockMaxRetries),
	})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, fmt.Errorf("ledger %s is locked by another computation: %w", key, err)
		}
		return nil, fmt.Errorf("failed to obtain ledger lock: %w", err)
	}
	return func() {
		_ = lock.Release(context.WithoutCancel(ctx))
	}, nil
}
