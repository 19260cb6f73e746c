package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName       = "sBurn"
	defaultAppEnv        = "development"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultShutdownDelay = 10 * time.Second
	defaultIdemTTL       = 24 * time.Hour

	defaultTokenName   = "sBurn"
	defaultTokenSymbol = "SBRN"
	defaultDecimals    = 8
	defaultBurnRateBps = 15
	defaultFeeRateBps  = 10
	defaultMinTransfer = 1_000
	defaultCheckOrder  = "min-first"
)

// Config captures runtime configuration loaded from environment variables.
// Token parameters are fixed for the lifetime of the process; changing a
// rate means redeploying.
type Config struct {
	AppName  string
	AppEnv   string
	Port     string
	LogLevel string

	// Optional backing services; the service falls back to in-memory
	// implementations when unset.
	DatabaseURL string
	RedisURL    string

	AuthSecret     string
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration

	TokenName   string
	TokenSymbol string
	Decimals    uint8
	TokenURI    string

	BurnRateBps uint32
	FeeRateBps  uint32
	MinTransfer uint64
	MaxMint     uint64

	BurnSink     string
	FeeRecipient string
	Minter       string

	AllowSelfTransfer bool
	CheckOrder        string
}

// Load reads configuration values from the environment and populates a
// Config instance. Ledger-level invariants (rate sums, distinct sinks) are
// validated later by token.Params.Validate.
func Load() (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         strings.ToLower(getEnv("APP_ENV", defaultAppEnv)),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		AuthSecret:     os.Getenv("AUTH_SECRET"),
		ShutdownPeriod: defaultShutdownDelay,
		IdempotencyTTL: defaultIdemTTL,

		TokenName:   getEnv("TOKEN_NAME", defaultTokenName),
		TokenSymbol: getEnv("TOKEN_SYMBOL", defaultTokenSymbol),
		TokenURI:    os.Getenv("TOKEN_URI"),

		BurnSink:     os.Getenv("BURN_SINK_PRINCIPAL"),
		FeeRecipient: os.Getenv("FEE_RECIPIENT_PRINCIPAL"),
		Minter:       os.Getenv("MINTER_PRINCIPAL"),

		CheckOrder: strings.ToLower(getEnv("TRANSFER_CHECK_ORDER", defaultCheckOrder)),
	}

	var err error
	if cfg.Decimals, err = getUint8("TOKEN_DECIMALS", defaultDecimals); err != nil {
		return Config{}, err
	}
	if cfg.BurnRateBps, err = getUint32("BURN_RATE_BPS", defaultBurnRateBps); err != nil {
		return Config{}, err
	}
	if cfg.FeeRateBps, err = getUint32("FEE_RATE_BPS", defaultFeeRateBps); err != nil {
		return Config{}, err
	}
	if cfg.MinTransfer, err = getUint64("MIN_TRANSFER_AMOUNT", defaultMinTransfer); err != nil {
		return Config{}, err
	}
	if cfg.MaxMint, err = getUint64("MAX_MINT_AMOUNT", 0); err != nil {
		return Config{}, err
	}
	if cfg.AllowSelfTransfer, err = getBool("ALLOW_SELF_TRANSFER", false); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownPeriod = d
	}
	if v := os.Getenv("IDEMPOTENCY_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid IDEMPOTENCY_TTL: %w", err)
		}
		cfg.IdempotencyTTL = d
	}

	if cfg.Minter == "" {
		return Config{}, fmt.Errorf("MINTER_PRINCIPAL must be set")
	}
	if cfg.BurnSink == "" {
		return Config{}, fmt.Errorf("BURN_SINK_PRINCIPAL must be set")
	}
	if cfg.FeeRecipient == "" {
		return Config{}, fmt.Errorf("FEE_RECIPIENT_PRINCIPAL must be set")
	}
	if cfg.AuthSecret == "" && !cfg.IsDev() {
		return Config{}, fmt.Errorf("AUTH_SECRET must be set when APP_ENV=%s", cfg.AppEnv)
	}

	return cfg, nil
}

// IsDev reports whether the service runs in a development environment.
func (c Config) IsDev() bool {
	switch c.AppEnv {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getUint64(key string, fallback uint64) (uint64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getUint32(key string, fallback uint32) (uint32, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return uint32(n), nil
}

func getUint8(key string, fallback uint8) (uint8, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return uint8(n), nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
