// Package observability provides OpenTelemetry tracing and metrics for the
// PAI client. Both are optional: when no OTLP endpoint is configured the
// client uses the global no-op providers and pays nothing.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("pai"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("pai"))
//	metrics, err := observability.NewClientMetrics(observability.Meter("pai"))
package observability
