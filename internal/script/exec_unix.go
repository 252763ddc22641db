// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package script

import "syscall"

// Replace replaces the current process image with cmd. It only returns
// when the replacement could not happen.
func Replace(cmd *Command) error {
	program := cmd.Argv[0]

	if err := chdir(cmd.Dir); err != nil {
		return &ExecError{Program: program, Err: err}
	}

	path, err := lookProgram(cmd.Dir, program)
	if err != nil {
		return &ExecError{Program: program, Err: err}
	}

	if err := syscall.Exec(path, cmd.Argv, cmd.Env); err != nil {
		return &ExecError{Program: program, Err: err}
	}
	return nil
}
