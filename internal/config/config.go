package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config stores service settings.
type Config struct {
	Port      int
	LogLevel  string
	Storage   string
	DB        DB
	Lifecycle Lifecycle
	Kafka     Kafka
	RateLimit RateLimit
	Pprof     Pprof
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns a postgres connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Lifecycle stores coordinator and query settings.
type Lifecycle struct {
	OperationTimeout time.Duration
	UrgentWindow     time.Duration
}

// Kafka stores lifecycle event channel settings. No brokers disables it.
type Kafka struct {
	Brokers        []string
	LifecycleTopic string
	GroupID        string
}

// Enabled reports whether events go through kafka.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0 && k.LifecycleTopic != ""
}

// RateLimit stores per-actor token bucket settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores debug profiling server settings.
type Pprof struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      defaultPort,
		LogLevel:  envOr("LOG_LEVEL", defaultLogLevel),
		Storage:   envOr("STORAGE_DRIVER", defaultStorage),
		DB:        defaultDB,
		Lifecycle: defaultLifecycle,
		Kafka:     defaultKafka,
		RateLimit: defaultRateLimit,
		Pprof:     defaultPprof,
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}

	cfg.DB.Host = envOr("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envOr("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envOr("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envOr("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envOr("POSTGRES_DB", cfg.DB.Name)
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT %q: %w", cfg.DB.Port, err)
	}

	if cfg.Lifecycle.OperationTimeout, err = envDuration("LIFECYCLE_OPERATION_TIMEOUT", cfg.Lifecycle.OperationTimeout); err != nil {
		return nil, err
	}
	if cfg.Lifecycle.UrgentWindow, err = envDuration("URGENT_WINDOW", cfg.Lifecycle.UrgentWindow); err != nil {
		return nil, err
	}

	cfg.Kafka.Brokers = splitList(os.Getenv("KAFKA_BROKERS"))
	cfg.Kafka.LifecycleTopic = envOr("KAFKA_LIFECYCLE_TOPIC", cfg.Kafka.LifecycleTopic)
	cfg.Kafka.GroupID = envOr("KAFKA_GROUP_ID", cfg.Kafka.GroupID)

	if cfg.RateLimit, err = loadRateLimit(cfg.RateLimit); err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(os.Getenv("PPROF_ENABLED")); v != "" {
		if cfg.Pprof.Enabled, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid PPROF_ENABLED %q: %w", v, err)
		}
	}
	cfg.Pprof.Addr = envOr("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = envOr("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envOr("PPROF_PASS", cfg.Pprof.Pass)

	fs := pflag.CommandLine
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage driver: postgres or memory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch c.Storage {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("invalid storage driver: %q", c.Storage)
	}
	if c.Lifecycle.OperationTimeout <= 0 {
		return fmt.Errorf("invalid lifecycle operation timeout: %s", c.Lifecycle.OperationTimeout)
	}
	if c.Lifecycle.UrgentWindow <= 0 {
		return fmt.Errorf("invalid urgent window: %s", c.Lifecycle.UrgentWindow)
	}
	if c.Pprof.Enabled && strings.TrimSpace(c.Pprof.Addr) == "" {
		return fmt.Errorf("pprof enabled without address")
	}
	return nil
}

func loadRateLimit(rl RateLimit) (RateLimit, error) {
	var err error
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED")); v != "" {
		if rl.Enabled, err = strconv.ParseBool(v); err != nil {
			return rl, fmt.Errorf("invalid RATE_LIMIT_ENABLED %q: %w", v, err)
		}
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_RATE")); v != "" {
		if rl.Rate, err = strconv.ParseFloat(v, 64); err != nil {
			return rl, fmt.Errorf("invalid RATE_LIMIT_RATE %q: %w", v, err)
		}
	}
	if rl.Burst, err = envInt("RATE_LIMIT_BURST", rl.Burst); err != nil {
		return rl, err
	}
	if rl.TTL, err = envDuration("RATE_LIMIT_TTL", rl.TTL); err != nil {
		return rl, err
	}
	if rl.MaxBuckets, err = envInt("RATE_LIMIT_MAX_BUCKETS", rl.MaxBuckets); err != nil {
		return rl, err
	}
	return rl, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
