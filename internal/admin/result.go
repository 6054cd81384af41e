// ABOUTME: Result type returned by every administrative operation
// ABOUTME: Ordered field list with an error-first contract and compact JSON encoding

package admin

import (
	"bytes"
	"encoding/json"
)

// Field is one key/value pair in a Result. Field order is significant for
// the pairs wire encoding, so Result keeps insertion order rather than
// using a map.
type Field struct {
	Key   string
	Value any
}

// Result is the uniform output of every operation. The first field is
// always "error": false on success, or a machine-readable error code
// string. Payload fields follow in insertion order.
type Result struct {
	fields []Field
}

// Success returns a Result with error set to false.
func Success() Result {
	return Result{fields: []Field{{Key: "error", Value: false}}}
}

// Failure returns a Result carrying the given error code.
func Failure(code string) Result {
	return Result{fields: []Field{{Key: "error", Value: code}}}
}

// With returns a copy of the Result with an extra payload field appended.
func (r Result) With(key string, value any) Result {
	fields := make([]Field, len(r.fields), len(r.fields)+1)
	copy(fields, r.fields)
	return Result{fields: append(fields, Field{Key: key, Value: value})}
}

// Err returns the error code, or the empty string on success.
func (r Result) Err() string {
	for _, f := range r.fields {
		if f.Key == "error" {
			if code, ok := f.Value.(string); ok {
				return code
			}
			return ""
		}
	}
	return ""
}

// Get returns the value of the named field.
func (r Result) Get(key string) (any, bool) {
	for _, f := range r.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Fields returns the fields in insertion order.
func (r Result) Fields() []Field {
	return r.fields
}

// IsZero reports whether the Result carries no fields at all.
func (r Result) IsZero() bool {
	return len(r.fields) == 0
}

// MarshalJSON encodes the Result as a compact JSON object preserving field
// order.
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
