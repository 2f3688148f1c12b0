package httpclient

import (
	"fmt"
	"time"

	"github.com/paifilter/paikit/resilience"
)

const (
	defaultTimeout = 30 * time.Second
)

// Config configures the HTTP client. All fields are fixed at construction;
// the client holds no mutable state after New returns.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `mapstructure:"base_url"`

	// Timeout bounds each individual request attempt. It does not bound the
	// whole retry chain. Defaults to 30s.
	Timeout time.Duration `mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `mapstructure:"headers"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("httpclient: base URL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	return nil
}

// DefaultRetryConfig returns the retry policy for PAI requests: linear
// backoff, retrying only failures where no HTTP response was received.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}
