package config

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Backends for CACHE_BACKEND and REFERENCE_BACKEND.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	CacheBackend     string        `env:"CACHE_BACKEND,     default=memory"`
	ReferenceBackend string        `env:"REFERENCE_BACKEND, default=memory"`
	TierTimeout      time.Duration `env:"TIER_TIMEOUT,      default=3s"`
	DutyCacheTTL     time.Duration `env:"DUTY_CACHE_TTL,    default=24h"`
	BatchWorkers     int           `env:"BATCH_WORKERS,     default=8"`

	// FreightRateOverrides adjusts the built-in rate card, e.g.
	// "sea_fcl:0.2,air_standard:4.8".
	FreightRateOverrides map[string]float64 `env:"FREIGHT_RATE_OVERRIDES"`

	Mongo    MongoConfig
	Redis    RedisConfig
	SQLite   SQLiteConfig
	RatesAPI RatesAPIConfig
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=landed_cost"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR,       default=localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB,         default=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX, default=landedcost:"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=landed_cost.db"`
}

// RatesAPIConfig configures the external rates service. An empty BaseURL
// disables every API tier.
type RatesAPIConfig struct {
	BaseURL           string        `env:"RATES_API_URL"`
	ClientID          string        `env:"RATES_API_CLIENT_ID"`
	ClientSecret      string        `env:"RATES_API_CLIENT_SECRET"`
	TokenURL          string        `env:"RATES_API_TOKEN_URL"`
	Scopes            []string      `env:"RATES_API_SCOPES"`
	Timeout           time.Duration `env:"RATES_API_TIMEOUT, default=10s"`
	RequestsPerSecond float64       `env:"RATES_API_RPS,     default=20"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.CacheBackend = strings.ToLower(c.CacheBackend)
	c.ReferenceBackend = strings.ToLower(c.ReferenceBackend)

	switch c.CacheBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("config: unsupported CACHE_BACKEND %q", c.CacheBackend)
	}
	switch c.ReferenceBackend {
	case BackendMemory, BackendMongo, BackendSQLite:
	default:
		return fmt.Errorf("config: unsupported REFERENCE_BACKEND %q", c.ReferenceBackend)
	}
	if c.TierTimeout <= 0 {
		return fmt.Errorf("config: TIER_TIMEOUT must be positive")
	}
	for k, v := range c.FreightRateOverrides {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("config: FREIGHT_RATE_OVERRIDES rate for %q must be a non-negative number", k)
		}
	}
	return nil
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
