package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Detail contains the error details carried inside the envelope.
type Detail struct {
	// Code is a machine-readable error code.
	Code Code `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Field names the input field the error relates to, if any.
	Field string `json:"field,omitempty"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
}

// APIError is the normalized error envelope. It is both the wire format the
// backend returns on failure and the error type every caller receives.
type APIError struct {
	// Success is always false for errors; kept explicit to match the wire shape.
	Success bool `json:"success"`
	// Detail describes the error.
	Detail Detail `json:"error"`
	// Timestamp is the instant the error was created (not the original request).
	Timestamp time.Time `json:"timestamp"`
	// RequestID correlates the error with a request, if known.
	RequestID string `json:"request_id,omitempty"`
	// HTTPStatus is the status code the error arrived with (0 for client-side errors).
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, if any.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *APIError) Error() string {
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Detail.Code, e.HTTPStatus, e.Detail.Message)
	}
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *APIError) Unwrap() error { return e.Cause }

// Retryable returns true if the error represents a transient transport
// failure. An error that arrived with an HTTP response is always final,
// even when the response body itself carries a retryable code.
func (e *APIError) Retryable() bool {
	return e.HTTPStatus == 0 && IsRetryableCode(e.Detail.Code)
}

// WithCause sets the underlying cause and returns the receiver.
func (e *APIError) WithCause(cause error) *APIError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *APIError) WithDetail(key string, value any) *APIError {
	if e.Detail.Details == nil {
		e.Detail.Details = make(map[string]any)
	}
	e.Detail.Details[key] = value
	return e
}

// New creates a new APIError with the given code and message.
func New(code Code, message string) *APIError {
	return &APIError{
		Detail:    Detail{Code: code, Message: message},
		Timestamp: time.Now().UTC(),
	}
}

// --- Constructors for client-side failures ---

// NetworkError creates the synthetic envelope for a failure where no HTTP
// response was received. The message is taken from the transport's own
// failure description, falling back to a generic string.
func NetworkError(cause error) *APIError {
	message := "Network error occurred"
	if cause != nil {
		message = cause.Error()
	}
	return &APIError{
		Detail:    Detail{Code: CodeNetworkError, Message: message},
		Timestamp: time.Now().UTC(),
		Cause:     cause,
	}
}

// DecodeError creates the envelope for a response whose body did not match
// the expected shape.
func DecodeError(cause error) *APIError {
	return &APIError{
		Detail:    Detail{Code: CodeDecodeError, Message: "Failed to decode response body"},
		Timestamp: time.Now().UTC(),
		Cause:     cause,
	}
}

// Validation creates the envelope for a local input validation failure.
func Validation(message string) *APIError {
	return &APIError{
		Detail:    Detail{Code: CodeValidationError, Message: message},
		Timestamp: time.Now().UTC(),
	}
}

// InvalidInput creates a validation envelope scoped to a single field.
func InvalidInput(field, reason string) *APIError {
	return &APIError{
		Detail: Detail{
			Code:    CodeValidationError,
			Message: fmt.Sprintf("Invalid input: %s", reason),
			Field:   field,
		},
		Timestamp: time.Now().UTC(),
	}
}

// --- Predicates ---

// IsAPIError checks if an error is an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return stderrors.As(err, &apiErr)
}

// AsAPIError converts an error to an APIError if possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsCode checks if an error is an APIError with the given code.
func IsCode(err error, code Code) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Detail.Code == code
}

// IsNetworkError checks if an error is a synthetic transport failure.
func IsNetworkError(err error) bool {
	return IsCode(err, CodeNetworkError)
}

// IsDecodeError checks if an error is a response decoding failure.
func IsDecodeError(err error) bool {
	return IsCode(err, CodeDecodeError)
}

// IsValidationError checks if an error is a validation failure.
func IsValidationError(err error) bool {
	return IsCode(err, CodeValidationError)
}

// IsRetryable checks if an error represents a transient failure.
func IsRetryable(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Retryable()
}
