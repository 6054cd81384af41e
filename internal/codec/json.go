// ABOUTME: Compact JSON encoding of Results
// ABOUTME: No extraneous whitespace, field order preserved

package codec

import (
	"encoding/json"

	"github.com/2389/bncctl/internal/admin"
)

// encodeJSON emits the Result as a minimal JSON object. Result's own
// MarshalJSON preserves field order and produces no whitespace.
func encodeJSON(r admin.Result) ([]byte, error) {
	return json.Marshal(r)
}
