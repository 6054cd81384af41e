// ABOUTME: Response encoding for administrative Results
// ABOUTME: Format negotiation between compact JSON and flat key=value pairs

package codec

import (
	"github.com/2389/bncctl/internal/admin"
)

// Format selects a wire encoding for a Result.
type Format string

const (
	// FormatJSON is the compact JSON object encoding, the default.
	FormatJSON Format = "json"

	// FormatPairs is the flat "key=value, " encoding.
	FormatPairs Format = "pairs"
)

// ParseFormat maps the request's response parameter to a Format. An empty
// value selects JSON; anything unrecognized is passed through and encodes
// to an empty body.
func ParseFormat(s string) Format {
	if s == "" {
		return FormatJSON
	}
	return Format(s)
}

// ContentType returns the media type for a format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatPairs:
		return "text/plain; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Encode serializes a Result for the wire. An empty Result or an
// unrecognized format yields an empty body.
func Encode(r admin.Result, f Format) ([]byte, error) {
	if r.IsZero() {
		return nil, nil
	}

	switch f {
	case FormatJSON:
		return encodeJSON(r)
	case FormatPairs:
		return encodePairs(r)
	default:
		return nil, nil
	}
}
