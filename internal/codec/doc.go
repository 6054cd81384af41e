// Package codec serializes administrative Results into one of the two wire
// formats, selected by the request's response parameter: json (compact
// object encoding, the default) or pairs ("key=value, " per field with a
// trailing separator). An unrecognized format produces an empty body.
package codec
