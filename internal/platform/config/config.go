package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile              = ".env"
	defaultPort                 = "8080"
	defaultReadTimeout          = 15 * time.Second
	defaultWriteTimeout         = 30 * time.Second
	defaultIdleTimeout          = 120 * time.Second
	defaultEnvironment          = "development"
	defaultTaxRateBps           = 800
	defaultDeliveryFee          = int64(399)
	defaultCurrency             = "USD"
	defaultEstimateOffset       = 30 * time.Minute
	defaultSessionHeader        = "X-Session-ID"
	defaultIdempotencyHeader    = "Idempotency-Key"
	defaultIdempotencyTTL       = 24 * time.Hour
	defaultIdempotencyInterval  = time.Hour
	defaultIdempotencyBatchSize = 200
	defaultMaxLineQuantity      = 99
	defaultOrderPageSize        = 20
	defaultOrderPageSizeMax     = 100
	defaultOrderRateLimit       = 30
	defaultOrderRateWindow      = time.Minute
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server      ServerConfig
	Pricing     PricingConfig
	Delivery    DeliveryConfig
	Cart        CartConfig
	Session     SessionConfig
	Orders      OrdersConfig
	Idempotency IdempotencyConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Environment  string
	Version      string
}

// PricingConfig controls money calculations at checkout.
type PricingConfig struct {
	// TaxRateBps is the sales tax rate in basis points applied to the
	// cart subtotal.
	TaxRateBps int64
	// DefaultDeliveryFee is charged in minor units when the supermarket
	// does not publish its own fee.
	DefaultDeliveryFee int64
	Currency           string
}

// DeliveryConfig tunes delivery estimation and the dispatch simulation.
type DeliveryConfig struct {
	// EstimateOffset is added to the checkout time to produce the
	// estimated delivery timestamp.
	EstimateOffset time.Duration
}

// CartConfig bounds cart mutations.
type CartConfig struct {
	MaxLineQuantity int
}

// SessionConfig controls shopper session resolution.
type SessionConfig struct {
	Header string
}

// OrdersConfig bounds order listing and checkout traffic.
type OrdersConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	// RateLimit caps order mutations per session within RateWindow.
	// Zero disables rate limiting.
	RateLimit  int
	RateWindow time.Duration
}

// IdempotencyConfig controls idempotency middleware behaviour.
type IdempotencyConfig struct {
	Header           string
	TTL              time.Duration
	CleanupInterval  time.Duration
	CleanupBatchSize int
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the application configuration by combining defaults, .env
// overrides, and environment variables. Precedence from lowest to highest is
// dotenv, system environment, explicit env map.
func Load(_ context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}

	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "API_SERVER_PORT", defaultPort),
			ReadTimeout:  durationWithDefault(lookup, "API_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "API_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "API_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
			Environment:  stringWithDefault(lookup, "API_SERVER_ENVIRONMENT", defaultEnvironment),
			Version:      stringWithDefault(lookup, "API_SERVER_VERSION", ""),
		},
		Pricing: PricingConfig{
			TaxRateBps:         int64(intWithDefault(lookup, "API_PRICING_TAX_RATE_BPS", defaultTaxRateBps)),
			DefaultDeliveryFee: int64WithDefault(lookup, "API_PRICING_DEFAULT_DELIVERY_FEE", defaultDeliveryFee),
			Currency:           strings.ToUpper(stringWithDefault(lookup, "API_PRICING_CURRENCY", defaultCurrency)),
		},
		Delivery: DeliveryConfig{
			EstimateOffset: durationWithDefault(lookup, "API_DELIVERY_ESTIMATE_OFFSET", defaultEstimateOffset),
		},
		Cart: CartConfig{
			MaxLineQuantity: intWithDefault(lookup, "API_CART_MAX_LINE_QUANTITY", defaultMaxLineQuantity),
		},
		Session: SessionConfig{
			Header: stringWithDefault(lookup, "API_SESSION_HEADER", defaultSessionHeader),
		},
		Orders: OrdersConfig{
			DefaultPageSize: intWithDefault(lookup, "API_ORDERS_PAGE_SIZE", defaultOrderPageSize),
			MaxPageSize:     intWithDefault(lookup, "API_ORDERS_PAGE_SIZE_MAX", defaultOrderPageSizeMax),
			RateLimit:       intWithDefault(lookup, "API_ORDERS_RATE_LIMIT", defaultOrderRateLimit),
			RateWindow:      durationWithDefault(lookup, "API_ORDERS_RATE_WINDOW", defaultOrderRateWindow),
		},
		Idempotency: IdempotencyConfig{
			Header:           stringWithDefault(lookup, "API_IDEMPOTENCY_HEADER", defaultIdempotencyHeader),
			TTL:              durationWithDefault(lookup, "API_IDEMPOTENCY_TTL", defaultIdempotencyTTL),
			CleanupInterval:  durationWithDefault(lookup, "API_IDEMPOTENCY_CLEANUP_INTERVAL", defaultIdempotencyInterval),
			CleanupBatchSize: intWithDefault(lookup, "API_IDEMPOTENCY_CLEANUP_BATCH", defaultIdempotencyBatchSize),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "Server.Port")
	}
	if cfg.Pricing.TaxRateBps < 0 || cfg.Pricing.TaxRateBps > 10000 {
		missing = append(missing, "Pricing.TaxRateBps")
	}
	if cfg.Pricing.DefaultDeliveryFee < 0 {
		missing = append(missing, "Pricing.DefaultDeliveryFee")
	}
	if len(cfg.Pricing.Currency) != 3 {
		missing = append(missing, "Pricing.Currency")
	}
	if cfg.Delivery.EstimateOffset <= 0 {
		missing = append(missing, "Delivery.EstimateOffset")
	}
	if cfg.Cart.MaxLineQuantity <= 0 {
		missing = append(missing, "Cart.MaxLineQuantity")
	}
	if strings.TrimSpace(cfg.Session.Header) == "" {
		missing = append(missing, "Session.Header")
	}
	if cfg.Orders.DefaultPageSize <= 0 || cfg.Orders.DefaultPageSize > cfg.Orders.MaxPageSize {
		missing = append(missing, "Orders.DefaultPageSize")
	}
	if cfg.Orders.RateLimit < 0 || (cfg.Orders.RateLimit > 0 && cfg.Orders.RateWindow <= 0) {
		missing = append(missing, "Orders.RateLimit")
	}
	if strings.TrimSpace(cfg.Idempotency.Header) == "" {
		missing = append(missing, "Idempotency.Header")
	}
	if cfg.Idempotency.TTL <= 0 {
		missing = append(missing, "Idempotency.TTL")
	}
	if cfg.Idempotency.CleanupInterval <= 0 {
		missing = append(missing, "Idempotency.CleanupInterval")
	}
	if cfg.Idempotency.CleanupBatchSize <= 0 {
		missing = append(missing, "Idempotency.CleanupBatchSize")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		value = strings.Trim(value, "\"'")
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func int64WithDefault(lookup func(string) (string, bool), key string, fallback int64) int64 {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
