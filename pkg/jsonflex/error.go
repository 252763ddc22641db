// SPDX-License-Identifier: MPL-2.0

package jsonflex

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnexpectedKind is returned when a value is neither a string nor an object.
	ErrUnexpectedKind = errors.New("expected a string or an object")
	// ErrFileTooLarge is returned when a document exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")
)

type (
	// KindError reports the JSON kind that was found where a string or an
	// object was expected. It wraps ErrUnexpectedKind.
	KindError struct {
		Kind string
	}

	// FieldError attaches the map key (or a dotted path of keys) to a decode error.
	FieldError struct {
		Key string
		Err error
	}

	// SyntaxError is a malformed-document error with its location.
	SyntaxError struct {
		Filename string
		Line     int
		Column   int
		Err      error
	}

	// SizeError is returned when a document exceeds the size limit.
	// It wraps ErrFileTooLarge.
	SizeError struct {
		Filename string
		Size     int64
		Max      int64
	}
)

// Error implements the error interface.
func (e *KindError) Error() string {
	return fmt.Sprintf("%s, got %s", ErrUnexpectedKind, e.Kind)
}

// Unwrap returns ErrUnexpectedKind for errors.Is compatibility.
func (e *KindError) Unwrap() error { return ErrUnexpectedKind }

// Error implements the error interface. Nested field errors collapse into a
// dotted path, e.g. "scripts.build: ...".
func (e *FieldError) Error() string {
	return e.Path() + ": " + innermost(e).Error()
}

// Unwrap returns the underlying decode error.
func (e *FieldError) Unwrap() error { return e.Err }

// Path returns the dotted key path of this error and any nested FieldError.
func (e *FieldError) Path() string {
	keys := []string{e.Key}
	var next *FieldError
	for err := e.Err; errors.As(err, &next); err = next.Err {
		keys = append(keys, next.Key)
	}
	return strings.Join(keys, ".")
}

// innermost returns the first error below the chain of FieldErrors.
func innermost(e *FieldError) error {
	err := e.Err
	for {
		var fe *FieldError
		if !errors.As(err, &fe) {
			return err
		}
		err = fe.Err
	}
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	name := e.Filename
	if name == "" {
		name = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", name, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", name, e.Err)
}

// Unwrap returns the underlying encoding/json error.
func (e *SyntaxError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: file size %d bytes exceeds maximum %d bytes", e.Filename, e.Size, e.Max)
}

// Unwrap returns ErrFileTooLarge for errors.Is compatibility.
func (e *SizeError) Unwrap() error { return ErrFileTooLarge }
