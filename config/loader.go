package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderConfig holds optional overrides for Load.
type LoaderConfig struct {
	EnvFile string // Direct .env file path (optional)
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// envBindings maps config keys to their environment variable names.
var envBindings = map[string]string{
	"api_url":       "PAI_API_URL",
	"timeout":       "PAI_TIMEOUT",
	"max_retries":   "PAI_MAX_RETRIES",
	"retry_delay":   "PAI_RETRY_DELAY",
	"otlp_endpoint": "PAI_OTLP_ENDPOINT",
	"log.level":     "LOG_LEVEL",
	"log.format":    "LOG_FORMAT",
	"log.output":    "LOG_OUTPUT",
	"log.no_color":  "LOG_NO_COLOR",
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. Missing values fall back to defaults; the returned config has
// already passed validation.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	if err := loadEnvFile(lc.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", env, err)
		}
	}

	// Defaults live here rather than in ApplyDefaults so an explicit
	// PAI_MAX_RETRIES=0 still means "no retries".
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("max_retries", defaultMaxRetries)
	v.SetDefault("retry_delay", defaultRetryDelay)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFile loads a .env file into the process environment. An explicit
// path must exist; the default ./.env is optional.
func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("config: load env file %s: %w", path, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		// Values already present in the environment take precedence.
		_ = godotenv.Load(".env")
	}
	return nil
}
