// SPDX-License-Identifier: MPL-2.0

// Package dispatch decides how a command line is handled: by a built-in
// subcommand or, when the first word names no subcommand, by a configured
// script.
//
// Resolution has two phases. The strict phase asks the command grammar
// whether the arguments name an unknown subcommand. Only then does the
// fallback phase consult the repository configuration, rewriting
// "<script> args..." to "run <script> args..." and checking it exactly
// once more.
package dispatch
