// SPDX-License-Identifier: MPL-2.0

package script

import (
	"errors"
	"fmt"
)

var (
	// ErrNoScriptSpecified is returned when no script name was given.
	ErrNoScriptSpecified = errors.New("no script specified")
	// ErrScriptNotFound is the sentinel error wrapped by NotFoundError.
	ErrScriptNotFound = errors.New("script not found")
	// ErrEmptyCommand is returned when a command line splits into no words.
	ErrEmptyCommand = errors.New("empty command")
	// ErrExecFailed is the sentinel error wrapped by ExecError.
	ErrExecFailed = errors.New("failed to execute command")
)

type (
	// NotFoundError is returned when the configuration has no script with
	// the requested name.
	NotFoundError struct {
		Name string
	}

	// ExecError is returned when control could not be transferred to the
	// resolved program. The current process is still running.
	ExecError struct {
		Program string
		Err     error
	}

	// ExitStatusError carries the exit status of a child process on
	// platforms where the process image is not replaced.
	ExitStatusError struct {
		Code int
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("script %q not found", e.Name)
}

// Unwrap returns ErrScriptNotFound for errors.Is compatibility.
func (e *NotFoundError) Unwrap() error { return ErrScriptNotFound }

// Error implements the error interface.
func (e *ExecError) Error() string {
	return fmt.Sprintf("failed to execute %s: %v", e.Program, e.Err)
}

// Unwrap returns ErrExecFailed and the underlying cause.
func (e *ExecError) Unwrap() []error { return []error{ErrExecFailed, e.Err} }

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
