package logger

import "time"

// Standard field key constants for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldOperation  = "operation"
	FieldEndpoint   = "endpoint"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldAttempt    = "attempt"
	FieldDelay      = "delay_ms"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
)

// Fields builds a map[string]any from alternating key-value pairs.
//
//	logger.Fields("endpoint", "/api/v1/search", "attempt", 2)
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]any {
	return map[string]any{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}

// DurationFields creates fields for a timed operation.
func DurationFields(op string, d time.Duration) map[string]any {
	return map[string]any{
		FieldOperation: op,
		FieldDuration:  d.Milliseconds(),
	}
}
