package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata" // zone data for distroless images

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Ledger cache backends selectable with LEDGER_CACHE.
const (
	CacheRedis  = "redis"
	CacheMemory = "memory"
	CacheNone   = "none"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	// ReportLocation is the zone calendar dates in report queries are interpreted in.
	ReportTimezone string
	ReportLocation *time.Location

	LedgerCache     string
	LedgerCacheTTL  time.Duration
	LedgerCacheSize int
	RedisAddress    string
	RedisPassword   string
	RedisDB         int

	KafkaBrokers []string
	KafkaTopic   string

	RateLimit          string
	CORSAllowedOrigins []string

	BalanceFetchConcurrency int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("REPORT_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("LEDGER_CACHE", CacheMemory)
	viper.SetDefault("LEDGER_CACHE_TTL", "10m")
	viper.SetDefault("LEDGER_CACHE_SIZE", 1024)
	viper.SetDefault("REDIS_ADDRESS", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "fuel-ledger.transactions")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("BALANCE_FETCH_CONCURRENCY", 8)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.ReportTimezone = viper.GetString("REPORT_TIMEZONE")
	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", cfg.ReportTimezone, err)
	}
	cfg.ReportLocation = loc

	cfg.LedgerCache = strings.ToLower(strings.TrimSpace(viper.GetString("LEDGER_CACHE")))
	switch cfg.LedgerCache {
	case CacheRedis, CacheMemory, CacheNone:
	default:
		return nil, fmt.Errorf("invalid LEDGER_CACHE %q: must be one of redis, memory, none", cfg.LedgerCache)
	}

	ttlStr := viper.GetString("LEDGER_CACHE_TTL")
	cfg.LedgerCacheTTL, err = time.ParseDuration(ttlStr)
	if err != nil || cfg.LedgerCacheTTL <= 0 {
		cfg.LedgerCacheTTL = 10 * time.Minute
		log.Printf("Warning: Invalid value for LEDGER_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, cfg.LedgerCacheTTL.String())
	}
	cfg.LedgerCacheSize = viper.GetInt("LEDGER_CACHE_SIZE")
	if cfg.LedgerCacheSize <= 0 {
		cfg.LedgerCacheSize = 1024
		log.Printf("Warning: Invalid value for LEDGER_CACHE_SIZE. Defaulting to %d.\n", cfg.LedgerCacheSize)
	}
	cfg.RedisAddress = viper.GetString("REDIS_ADDRESS")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")

	cfg.KafkaBrokers = splitList(viper.GetString("KAFKA_BROKERS"))
	cfg.KafkaTopic = viper.GetString("KAFKA_TOPIC")
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("Warning: KAFKA_BROKERS not set. Transaction events will only be logged.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.BalanceFetchConcurrency = viper.GetInt("BALANCE_FETCH_CONCURRENCY")
	if cfg.BalanceFetchConcurrency <= 0 {
		cfg.BalanceFetchConcurrency = 8
		log.Printf("Warning: Invalid value for BALANCE_FETCH_CONCURRENCY. Defaulting to %d.\n", cfg.BalanceFetchConcurrency)
	}

	return cfg, nil
}

// splitList parses a comma separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
