// Package cli implements the pai command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/paifilter/paikit/config"
	"github.com/paifilter/paikit/errors"
	"github.com/paifilter/paikit/httpclient"
	"github.com/paifilter/paikit/logger"
	"github.com/paifilter/paikit/observability"
	"github.com/paifilter/paikit/pai"
	"github.com/paifilter/paikit/version"
)

const serviceName = "pai-cli"

var (
	flagAPIURL  string
	flagTimeout time.Duration
	flagJSON    bool
	flagVerbose bool

	cfg    *config.Config
	log    *logger.Logger
	client *pai.Client

	shutdowns []func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "pai",
	Short: "Client for the Personal AI Filter intelligence engine",
	Long: `pai talks to the Personal AI Filter backend: store personal context,
search it semantically, generate AI insights grounded in it, and pull
personalized news signals.

Get started:
  pai health                      Check backend availability
  pai remember "I'm learning Go"  Store a piece of context
  pai search "Go concurrency"     Search stored context
  pai insight "what to study?"    Generate a grounded insight
  pai signals "LLM infra"         Rank news against your context`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown(cmd.Context())
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.Full()
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Backend base URL (overrides PAI_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Per-attempt request timeout (overrides PAI_TIMEOUT)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output raw JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// setup loads configuration and builds the shared client.
func setup(ctx context.Context) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}
	if flagTimeout > 0 {
		cfg.Timeout = flagTimeout
	}
	if flagVerbose {
		cfg.Log.Level = "debug"
	}

	log = logger.New(cfg.Log, serviceName)

	opts := []httpclient.Option{httpclient.WithLogger(log)}
	if cfg.OTLPEndpoint != "" {
		metrics, err := initTelemetry(ctx)
		if err != nil {
			return err
		}
		opts = append(opts, httpclient.WithMetrics(metrics))
	}

	client, err = pai.NewFromConfig(cfg, opts...)
	return err
}

// initTelemetry wires the OTLP exporters when an endpoint is configured.
func initTelemetry(ctx context.Context) (*observability.ClientMetrics, error) {
	tcfg := observability.DefaultTracerConfig(serviceName)
	tcfg.ServiceVersion = version.Short()
	tcfg.Endpoint = cfg.OTLPEndpoint
	tp, err := observability.InitTracer(ctx, tcfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	shutdowns = append(shutdowns, tp.Shutdown)

	mcfg := observability.DefaultMeterConfig(serviceName)
	mcfg.ServiceVersion = version.Short()
	mcfg.Endpoint = cfg.OTLPEndpoint
	mp, err := observability.InitMeter(ctx, mcfg)
	if err != nil {
		return nil, fmt.Errorf("init meter: %w", err)
	}
	shutdowns = append(shutdowns, mp.Shutdown)

	return observability.NewClientMetrics(observability.Meter(serviceName))
}

// teardown flushes telemetry exporters.
func teardown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	for _, shutdown := range shutdowns {
		if err := shutdown(ctx); err != nil && log != nil {
			log.Warn("telemetry shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
	}
	return nil
}

// printError renders a failure. Normalized envelopes get their code and
// message; anything else prints as-is.
func printError(err error) {
	if apiErr, ok := errors.AsAPIError(err); ok {
		if flagJSON {
			printJSON(os.Stderr, apiErr)
			return
		}
		fmt.Fprintf(os.Stderr, "error [%s]: %s\n", apiErr.Detail.Code, apiErr.Detail.Message)
		if apiErr.Detail.Field != "" {
			fmt.Fprintf(os.Stderr, "  field: %s\n", apiErr.Detail.Field)
		}
		if apiErr.RequestID != "" {
			fmt.Fprintf(os.Stderr, "  request id: %s\n", apiErr.RequestID)
		}
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
