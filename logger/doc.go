// Package logger provides structured logging for paikit using zerolog.
//
// It supports JSON and console output, log level configuration from the
// environment, and component-scoped loggers with structured fields.
//
//	log := logger.NewFromEnv("pai")
//	log.WithComponent("httpclient").Info("request sent", logger.Fields("path", "/api/v1/vectorize"))
package logger
