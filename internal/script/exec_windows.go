// SPDX-License-Identifier: MPL-2.0

//go:build windows

package script

import (
	"errors"
	"os"
	"os/exec"
)

// Replace runs cmd to completion with inherited standard streams, since the
// process image cannot be replaced in place. A non-zero exit is reported as
// an *ExitStatusError.
func Replace(cmd *Command) error {
	program := cmd.Argv[0]

	path, err := lookProgram(cmd.Dir, program)
	if err != nil {
		return &ExecError{Program: program, Err: err}
	}

	// No context: the child must outlive any cancellation of the dispatcher.
	child := exec.Command(path, cmd.Argv[1:]...) //nolint:noctx
	child.Dir = cmd.Dir
	child.Env = cmd.Env
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	if err := child.Start(); err != nil {
		return &ExecError{Program: program, Err: err}
	}

	if err := child.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitStatusError{Code: exitErr.ExitCode()}
		}
		return &ExecError{Program: program, Err: err}
	}
	return nil
}
