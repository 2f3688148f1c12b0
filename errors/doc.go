// Package errors implements the normalized error envelope shared with the
// PAI Intelligence Engine. Every failure surfaced by this toolkit — whether
// it originated in the transport, in response decoding, in local input
// validation, or in an error body returned by the backend — is an *APIError
// carrying the same JSON shape the backend emits:
//
//	{
//	    "success": false,
//	    "error": {"code": "...", "message": "...", "details": {...}},
//	    "timestamp": "..."
//	}
package errors
