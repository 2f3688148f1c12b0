package pai

import (
	"strings"

	"github.com/paifilter/paikit/validation"
)

// Request defaults, mirroring the backend's.
const (
	DefaultTopK         = 3
	DefaultSignalsTopK  = 10
	DefaultLimitPerFeed = 10
)

// DefaultMinScore is the default relevance threshold for signals.
const DefaultMinScore = 3.0

// textInput is the body of all text-based operations.
type textInput struct {
	Text string `json:"text" validate:"required,min=1,max=10000"`
}

// searchInput extends textInput with a result limit.
type searchInput struct {
	Text string `json:"text" validate:"required,min=1,max=10000"`
	TopK int    `json:"top_k" validate:"min=1,max=20"`
}

// signalsQuery holds the signal query parameters. Sent as URL query values,
// validated as a struct before the request is built.
type signalsQuery struct {
	TopK     int     `json:"top_k" validate:"min=1,max=20"`
	MinScore float64 `json:"min_score" validate:"min=0,max=10"`
}

// sanitizeText strips NUL bytes and collapses runs of whitespace, matching
// the backend's input sanitization so local validation agrees with the
// server's verdict.
func sanitizeText(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	return strings.Join(strings.Fields(text), " ")
}

// newTextInput sanitizes and validates a text body.
func newTextInput(text string) (*textInput, error) {
	in := &textInput{Text: sanitizeText(text)}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return in, nil
}

// newSearchInput sanitizes and validates a search body, applying the
// default limit when topK is not positive.
func newSearchInput(text string, topK int) (*searchInput, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	in := &searchInput{Text: sanitizeText(text), TopK: topK}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return in, nil
}
