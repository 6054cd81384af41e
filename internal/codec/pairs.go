// ABOUTME: Flat key=value pairs encoding of Results
// ABOUTME: Comma-space separated with a trailing separator after the last pair

package codec

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/2389/bncctl/internal/admin"
)

// encodePairs emits "key=value, " for every top-level field, in order. The
// trailing separator after the last pair is part of the historical wire
// format and is kept.
func encodePairs(r admin.Result) ([]byte, error) {
	var buf bytes.Buffer
	for _, f := range r.Fields() {
		buf.WriteString(f.Key)
		buf.WriteByte('=')
		value, err := pairValue(f.Value)
		if err != nil {
			return nil, err
		}
		buf.WriteString(value)
		buf.WriteString(", ")
	}
	return buf.Bytes(), nil
}

// pairValue renders one field value. Booleans are the literal tokens
// true/false; strings are raw; anything structured falls back to its JSON
// rendering.
func pairValue(v any) (string, error) {
	switch val := v.(type) {
	case bool:
		return strconv.FormatBool(val), nil
	case string:
		return val, nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
