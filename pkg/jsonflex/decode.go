// SPDX-License-Identifier: MPL-2.0

package jsonflex

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"

	"golang.org/x/exp/maps"
)

type (
	// StringDecoder is the constraint for types that accept the scalar form.
	// DecodeString is the canonical "from string" constructor of T; it is
	// called on a zero T and may fail.
	//
	// T must not decode itself through Decode from an UnmarshalJSON method,
	// since the structured form is decoded with encoding/json directly.
	StringDecoder[T any] interface {
		*T
		DecodeString(s string) error
	}

	// Map is a JSON object whose values may each be given in scalar or
	// structured form. The zero value is an empty map; a JSON null decodes
	// to an empty, non-nil map.
	Map[T any, PT StringDecoder[T]] map[string]T
)

// Decode decodes a single JSON value that is either a string or an object.
//
// The scalar form is attempted first. When encoding/json reports a type
// mismatch for an object, the value is decoded again as T. Any other kind
// (null, number, bool, array) is rejected with a *KindError.
func Decode[T any, PT StringDecoder[T]](data []byte) (T, error) {
	var zero T

	if isNull(data) {
		return zero, &KindError{Kind: "null"}
	}

	var s string
	err := json.Unmarshal(data, &s)
	if err == nil {
		var v T
		if err := PT(&v).DecodeString(s); err != nil {
			return zero, err
		}
		return v, nil
	}

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return zero, err
	}
	if typeErr.Value != "object" {
		return zero, &KindError{Kind: typeErr.Value}
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, err
	}
	return v, nil
}

// UnmarshalJSON implements json.Unmarshaler. Entries are decoded in key
// order so the first reported error is deterministic.
func (m *Map[T, PT]) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*m = Map[T, PT]{}
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &KindError{Kind: typeErr.Value}
		}
		return err
	}

	keys := maps.Keys(raw)
	slices.Sort(keys)

	out := make(Map[T, PT], len(raw))
	for _, key := range keys {
		v, err := Decode[T, PT](raw[key])
		if err != nil {
			return &FieldError{Key: key, Err: err}
		}
		out[key] = v
	}

	*m = out
	return nil
}

// Keys returns the map keys in sorted order.
func (m Map[T, PT]) Keys() []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// ParseFile decodes a whole JSON document into T.
//
// Documents larger than the configured maximum are rejected before decoding.
// Malformed JSON is reported as a *SyntaxError carrying the line and column
// of the offending byte; decode errors raised by nested values are returned
// unchanged.
func ParseFile[T any](data []byte, opts ...Option) (*T, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	filename := options.filename
	if filename == "" {
		filename = "<input>"
	}

	if size := int64(len(data)); size > options.maxFileSize {
		return nil, &SizeError{Filename: filename, Size: size, Max: options.maxFileSize}
	}

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, formatError(err, data, filename)
	}

	return &result, nil
}

// formatError converts encoding/json syntax and type errors into a
// *SyntaxError with a line and column. Other errors pass through.
func formatError(err error, data []byte, filename string) error {
	// Offsets inside a map entry are relative to the entry, not the document.
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return err
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := position(data, syntaxErr.Offset)
		return &SyntaxError{Filename: filename, Line: line, Column: col, Err: err}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := position(data, typeErr.Offset)
		return &SyntaxError{Filename: filename, Line: line, Column: col, Err: err}
	}

	return err
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line = bytes.Count(before, []byte("\n")) + 1
	col = int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
