// SPDX-License-Identifier: MPL-2.0

// Package git wraps the git executable for the few queries gg needs,
// chiefly locating the top-level directory of the enclosing working tree.
package git
