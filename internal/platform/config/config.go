// Package config loads runtime configuration from defaults, an optional
// .env file, and environment variables, in increasing order of precedence.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile       = ".env"
	defaultPort          = "8080"
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 30 * time.Second
	defaultIdleTimeout   = 120 * time.Second
	defaultStatePath     = "data/storefront.json"
	defaultSlideInterval = 3800 * time.Millisecond
	defaultToastDuration = 2400 * time.Millisecond

	defaultFreeShippingThreshold = 60.0
	defaultShippingSurcharge     = 5.90
	defaultTaxRate               = 0.21
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Catalog  CatalogConfig
	Pricing  PricingConfig
	UI       UIConfig
	Features FeatureFlags
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StorageConfig locates the persisted storefront state.
type StorageConfig struct {
	StatePath string
}

// CatalogConfig points at an optional catalog seed override. When empty the
// embedded seed is used.
type CatalogConfig struct {
	SeedFile string
}

// PricingConfig carries the totals engine parameters.
type PricingConfig struct {
	FreeShippingThreshold float64
	ShippingSurcharge     float64
	DefaultTaxRate        float64
}

// UIConfig tunes the timed presentation helpers.
type UIConfig struct {
	SlideInterval time.Duration
	ToastDuration time.Duration
}

// FeatureFlags toggle optional behaviour without redeploying.
type FeatureFlags struct {
	EnableCrossSell bool
	EnableGuides    bool
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
// overrides, and environment variables.
func Load(opts ...Option) (Config, error) {
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
			Port:         stringWithDefault(lookup, "STORE_SERVER_PORT", defaultPort),
			ReadTimeout:  durationWithDefault(lookup, "STORE_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "STORE_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "STORE_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Storage: StorageConfig{
			StatePath: stringWithDefault(lookup, "STORE_STATE_PATH", defaultStatePath),
		},
		Catalog: CatalogConfig{
			SeedFile: stringWithDefault(lookup, "STORE_CATALOG_SEED_FILE", ""),
		},
		Pricing: PricingConfig{
			FreeShippingThreshold: floatWithDefault(lookup, "STORE_PRICING_FREE_SHIPPING_THRESHOLD", defaultFreeShippingThreshold),
			ShippingSurcharge:     floatWithDefault(lookup, "STORE_PRICING_SHIPPING_SURCHARGE", defaultShippingSurcharge),
			DefaultTaxRate:        floatWithDefault(lookup, "STORE_PRICING_DEFAULT_TAX_RATE", defaultTaxRate),
		},
		UI: UIConfig{
			SlideInterval: durationWithDefault(lookup, "STORE_UI_SLIDE_INTERVAL", defaultSlideInterval),
			ToastDuration: durationWithDefault(lookup, "STORE_UI_TOAST_DURATION", defaultToastDuration),
		},
		Features: FeatureFlags{
			EnableCrossSell: boolWithDefault(lookup, "STORE_FEATURE_CROSS_SELL", true),
			EnableGuides:    boolWithDefault(lookup, "STORE_FEATURE_GUIDES", true),
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
	if strings.TrimSpace(cfg.Storage.StatePath) == "" {
		missing = append(missing, "Storage.StatePath")
	}
	if cfg.Pricing.FreeShippingThreshold < 0 {
		missing = append(missing, "Pricing.FreeShippingThreshold")
	}
	if cfg.Pricing.ShippingSurcharge < 0 {
		missing = append(missing, "Pricing.ShippingSurcharge")
	}
	if cfg.Pricing.DefaultTaxRate < 0 || cfg.Pricing.DefaultTaxRate >= 1 {
		missing = append(missing, "Pricing.DefaultTaxRate")
	}
	if cfg.UI.SlideInterval <= 0 {
		missing = append(missing, "UI.SlideInterval")
	}
	if cfg.UI.ToastDuration <= 0 {
		missing = append(missing, "UI.ToastDuration")
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

func floatWithDefault(lookup func(string) (string, bool), key string, fallback float64) float64 {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
