package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/paifilter/paikit/logger"
)

const (
	// DefaultAPIURL is the local development address of the Intelligence Engine.
	DefaultAPIURL = "http://localhost:8000"

	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
)

// Config is the complete client configuration.
type Config struct {
	// APIURL is the base URL of the PAI Intelligence Engine.
	APIURL string `mapstructure:"api_url"`
	// Timeout bounds each individual request attempt, not the retry chain.
	Timeout time.Duration `mapstructure:"timeout"`
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int `mapstructure:"max_retries"`
	// RetryDelay is the base delay for linear backoff between retries.
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	// OTLPEndpoint enables trace export when set (host:port).
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	// Log configures structured logging.
	Log logger.Config `mapstructure:"log"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	c.Log.ApplyDefaults()
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: api_url must be an absolute URL (got: %s)", c.APIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: api_url scheme must be http or https (got: %s)", u.Scheme)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive")
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
