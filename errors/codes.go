package errors

// Code is a machine-readable error code. Values match the backend's error
// code enum byte for byte; codes produced only on the client side are
// grouped separately.
type Code string

// Codes emitted by the backend.
const (
	// CodeValidationError indicates the request failed input validation.
	CodeValidationError Code = "validation_error"
	// CodeEmbeddingFailed indicates embedding generation failed.
	CodeEmbeddingFailed Code = "embedding_failed"
	// CodeVectorDBError indicates a vector database operation failed.
	CodeVectorDBError Code = "vector_db_error"
	// CodeAIGenerationError indicates AI text generation failed.
	CodeAIGenerationError Code = "ai_generation_error"
	// CodeRateLimitExceeded indicates the caller sent too many requests.
	CodeRateLimitExceeded Code = "rate_limit_exceeded"
	// CodeInternalError indicates an unexpected backend error.
	CodeInternalError Code = "internal_error"
	// CodeNotFound indicates the requested resource was not found.
	CodeNotFound Code = "not_found"
)

// Codes synthesized by the client.
const (
	// CodeNetworkError indicates no HTTP response was received at all
	// (connection refused, DNS failure, timeout).
	CodeNetworkError Code = "network_error"
	// CodeDecodeError indicates a response was received but its body did
	// not match the expected shape.
	CodeDecodeError Code = "decode_error"
)

// retryableCodes marks codes eligible for retry. Only transient transport
// failures qualify: any failure that carries an HTTP response, including
// rate limiting and server errors, is surfaced to the caller as-is.
var retryableCodes = map[Code]bool{
	CodeNetworkError: true,
}

// IsRetryableCode returns true if the code indicates a transient failure.
func IsRetryableCode(code Code) bool {
	return retryableCodes[code]
}
