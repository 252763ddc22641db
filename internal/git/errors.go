// SPDX-License-Identifier: MPL-2.0

package git

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when the git executable cannot be located on PATH.
	ErrNotFound = errors.New("git executable not found")
	// ErrCommandFailed is the sentinel error wrapped by CommandError.
	ErrCommandFailed = errors.New("git command failed")
	// ErrInvalidOutput is returned when git prints output that is not valid UTF-8.
	ErrInvalidOutput = errors.New("git output is not valid UTF-8")
	// ErrEmptyOutput is returned when git succeeds without printing the
	// expected answer.
	ErrEmptyOutput = errors.New("git printed no output")
)

// CommandError is returned when git exits with a non-zero status.
// It wraps ErrCommandFailed for errors.Is() compatibility.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Unwrap returns ErrCommandFailed.
func (e *CommandError) Unwrap() error { return ErrCommandFailed }

// IsUnavailable reports whether err means git could not answer: the
// executable is missing, it exited non-zero (e.g. outside a repository) or
// it printed no answer. Callers with a fallback treat these as soft failures.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrCommandFailed) || errors.Is(err, ErrEmptyOutput)
}
