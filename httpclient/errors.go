package httpclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/paifilter/paikit/errors"
)

// IsRetryable reports whether an error is eligible for retry. Only
// synthetic transport failures qualify: the envelope must carry a retryable
// code AND no HTTP status. Every error that arrived with a response is
// final, even a passed-through body whose code claims to be retryable.
func IsRetryable(err error) bool {
	return errors.IsRetryable(err)
}

// normalizeStatusError converts a non-2xx response into the error envelope.
// A body that already carries the envelope passes through unchanged. The
// backend's bare exception shape ({"detail": {...}}) is lifted into an
// envelope; anything else gets a synthetic record keyed off the status code.
func normalizeStatusError(statusCode int, body []byte, requestID string) *errors.APIError {
	if apiErr := decodeEnvelope(body); apiErr != nil {
		apiErr.HTTPStatus = statusCode
		if apiErr.RequestID == "" {
			apiErr.RequestID = requestID
		}
		return apiErr
	}

	if apiErr := decodeExceptionDetail(statusCode, body); apiErr != nil {
		apiErr.HTTPStatus = statusCode
		apiErr.RequestID = requestID
		return apiErr
	}

	apiErr := errors.New(codeForStatus(statusCode), fmt.Sprintf("HTTP %d", statusCode))
	apiErr.HTTPStatus = statusCode
	apiErr.RequestID = requestID
	return apiErr
}

// decodeEnvelope parses a body that already is a normalized error record.
func decodeEnvelope(body []byte) *errors.APIError {
	if len(body) == 0 {
		return nil
	}
	var apiErr errors.APIError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return nil
	}
	if apiErr.Detail.Code == "" || apiErr.Detail.Message == "" {
		return nil
	}
	return &apiErr
}

// decodeExceptionDetail parses the backend's unhandled-exception shape:
// {"detail": {"code": "...", "message": "..."}} or {"detail": "..."}.
func decodeExceptionDetail(statusCode int, body []byte) *errors.APIError {
	if len(body) == 0 {
		return nil
	}

	var structured struct {
		Detail struct {
			Code    errors.Code `json:"code"`
			Message string      `json:"message"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && structured.Detail.Code != "" {
		return errors.New(structured.Detail.Code, structured.Detail.Message)
	}

	var plain struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &plain); err == nil && plain.Detail != "" {
		return errors.New(codeForStatus(statusCode), plain.Detail)
	}

	return nil
}

// codeForStatus maps a status code to the closest envelope code.
func codeForStatus(statusCode int) errors.Code {
	switch {
	case statusCode == http.StatusNotFound:
		return errors.CodeNotFound
	case statusCode == http.StatusTooManyRequests:
		return errors.CodeRateLimitExceeded
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		return errors.CodeValidationError
	default:
		return errors.CodeInternalError
	}
}
