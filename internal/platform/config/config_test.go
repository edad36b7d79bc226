package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://localhost/ledger")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/ledger", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, CacheMemory, cfg.LedgerCache)
	assert.Equal(t, 10*time.Minute, cfg.LedgerCacheTTL)
	assert.Equal(t, 1024, cfg.LedgerCacheSize)
	assert.Equal(t, "Asia/Kolkata", cfg.ReportLocation.String())
	assert.Equal(t, 8, cfg.BalanceFetchConcurrency)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "300-M", cfg.RateLimit)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("LEDGER_CACHE", "Redis")
	t.Setenv("LEDGER_CACHE_TTL", "90s")
	t.Setenv("REPORT_TIMEZONE", "UTC")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("BALANCE_FETCH_CONCURRENCY", "3")
	t.Setenv("JWT_ISSUER", "fuel-ledger")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, CacheRedis, cfg.LedgerCache)
	assert.Equal(t, 90*time.Second, cfg.LedgerCacheTTL)
	assert.Equal(t, time.UTC, cfg.ReportLocation)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 3, cfg.BalanceFetchConcurrency)
	assert.Equal(t, "fuel-ledger", cfg.JWTIssuer)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Run("unknown cache backend", func(t *testing.T) {
		t.Setenv("LEDGER_CACHE", "memcached")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "LEDGER_CACHE")
	})
	t.Run("unknown timezone", func(t *testing.T) {
		t.Setenv("REPORT_TIMEZONE", "Mars/Olympus")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "REPORT_TIMEZONE")
	})
	t.Run("default secret in production", func(t *testing.T) {
		t.Setenv("IS_PRODUCTION", "true")
		t.Setenv("JWT_SECRET", "")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
	t.Run("bad ttl falls back", func(t *testing.T) {
		t.Setenv("LEDGER_CACHE_TTL", "soon")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 10*time.Minute, cfg.LedgerCacheTTL)
	})
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,,b "))
}
