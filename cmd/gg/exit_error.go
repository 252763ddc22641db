// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/ggtools/gg/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE
// handlers. A nil Err means the failure was already reported (for example by
// the child process itself).
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeOf maps the error returned by command execution to a process exit
// status: ExitError carries its own code, anything else is ExitFailure.
func exitCodeOf(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code.Clamp()
	}
	return types.ExitFailure
}
