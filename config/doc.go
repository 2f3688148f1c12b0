// Package config provides configuration loading for paikit.
//
// Configuration comes from the environment, optionally seeded from a .env
// file (godotenv) and read through Viper. All variables use the PAI_ prefix:
//
//	PAI_API_URL      base URL of the Intelligence Engine (default http://localhost:8000)
//	PAI_TIMEOUT      per-attempt request timeout (default 30s)
//	PAI_MAX_RETRIES  retries after the initial attempt (default 3)
//	PAI_RETRY_DELAY  base linear-backoff delay (default 1s)
//	PAI_OTLP_ENDPOINT  OTLP trace exporter endpoint (empty disables tracing)
//
// Logging is configured through the LOG_* variables described in the logger
// package.
package config
