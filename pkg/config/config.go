// Package config reads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/policy"
	"github.com/chris/wallet-transfer-policy/pkg/storage/dynamodb"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
)

// ErrMissing is returned when a required variable is unset.
var ErrMissing = errors.New("environment variable not set")

// Config is the full service configuration.
type Config struct {
	Policy policy.Config

	StorageBackend string
	Tables         dynamodb.Tables
	SQSQueueURL    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PriceCacheKey string

	RelayJWTSecret string
	RelayJWTIssuer string

	HTTPPort      string
	AppBaseURL    string
	SweepInterval time.Duration
}

// FromEnv loads .env if present, then reads the process environment.
func FromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return Load(os.Getenv)
}

// Load builds a Config from getenv. Unset variables take defaults.
func Load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Policy:         policy.DefaultConfig(),
		StorageBackend: BackendMemory,
		PriceCacheKey:  "token-prices",
		HTTPPort:       "8080",
		SweepInterval:  time.Minute,
		Tables: dynamodb.Tables{
			Limits:    getenv("DYNAMODB_LIMITS_TABLE_NAME"),
			Whitelist: getenv("DYNAMODB_WHITELIST_TABLE_NAME"),
			Pending:   getenv("DYNAMODB_PENDING_TABLE_NAME"),
			Accounts:  getenv("DYNAMODB_ACCOUNTS_TABLE_NAME"),
			Events:    getenv("DYNAMODB_EVENTS_TABLE_NAME"),
		},
		SQSQueueURL:    getenv("SQS_QUEUE_URL"),
		RedisAddr:      getenv("REDIS_ADDR"),
		RedisPassword:  getenv("REDIS_PASSWORD"),
		RelayJWTSecret: getenv("RELAY_JWT_SECRET"),
		RelayJWTIssuer: getenv("RELAY_JWT_ISSUER"),
		AppBaseURL:     getenv("APP_BASE_URL"),
	}

	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{"SECURITY_PERIOD", &cfg.Policy.SecurityPeriod},
		{"SECURITY_WINDOW", &cfg.Policy.SecurityWindow},
		{"DAILY_PERIOD", &cfg.Policy.DailyPeriod},
		{"SWEEP_INTERVAL", &cfg.SweepInterval},
	}
	for _, d := range durations {
		if v := getenv(d.name); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil || parsed <= 0 {
				return nil, fmt.Errorf("%s must be a positive duration, got %q", d.name, v)
			}
			*d.dst = parsed
		}
	}

	if v := getenv("DEFAULT_DAILY_LIMIT"); v != "" {
		limit, err := uint256.FromDecimal(v)
		if err != nil {
			return nil, fmt.Errorf("DEFAULT_DAILY_LIMIT must be a decimal amount, got %q", v)
		}
		cfg.Policy.DefaultLimit = limit
	}
	if v := getenv("WRAPPED_NATIVE_TOKEN"); v != "" {
		if !common.IsHexAddress(v) {
			return nil, fmt.Errorf("WRAPPED_NATIVE_TOKEN must be an address, got %q", v)
		}
		cfg.Policy.WrappedNative = common.HexToAddress(v)
	}
	if v := getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB must be an integer, got %q", v)
		}
		cfg.RedisDB = db
	}
	if v := getenv("PRICE_CACHE_KEY"); v != "" {
		cfg.PriceCacheKey = v
	}
	if v := getenv("HTTP_PORT"); v != "" {
		cfg.HTTPPort = v
	}
	if v := getenv("STORAGE_BACKEND"); v != "" {
		cfg.StorageBackend = v
	}

	switch cfg.StorageBackend {
	case BackendMemory:
	case BackendDynamoDB:
		if err := validateTables(cfg.Tables); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendMemory, BackendDynamoDB, cfg.StorageBackend)
	}
	return cfg, nil
}

func validateTables(t dynamodb.Tables) error {
	names := []struct{ env, value string }{
		{"DYNAMODB_LIMITS_TABLE_NAME", t.Limits},
		{"DYNAMODB_WHITELIST_TABLE_NAME", t.Whitelist},
		{"DYNAMODB_PENDING_TABLE_NAME", t.Pending},
		{"DYNAMODB_ACCOUNTS_TABLE_NAME", t.Accounts},
		{"DYNAMODB_EVENTS_TABLE_NAME", t.Events},
	}
	for _, n := range names {
		if n.value == "" {
			return fmt.Errorf("%w: %s", ErrMissing, n.env)
		}
	}
	return nil
}

// Require returns ErrMissing for the first empty value.
func Require(vars map[string]string) error {
	for name, value := range vars {
		if value == "" {
			return fmt.Errorf("%w: %s", ErrMissing, name)
		}
	}
	return nil
}
