// Package validation validates request inputs before they reach the wire.
//
// Validation failures are reported as validation_error envelopes, the same
// shape the backend returns for its own request validation, so callers
// handle local and remote rejections identically.
//
//	type TextInput struct {
//	    Text string `json:"text" validate:"required,min=1,max=10000"`
//	}
//	err := validation.Struct(input)
package validation
