// SPDX-License-Identifier: MPL-2.0

// Package script resolves a configured script and its trailing arguments
// into a program invocation, then hands the process over to it.
//
// The base command text and the shell-quoted trailing arguments are joined
// into one command line, which is split again with POSIX word-splitting
// rules. The resulting argv replaces the current process image on Unix; on
// Windows the program is spawned and its exit status propagated.
package script
