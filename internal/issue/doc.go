// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// This package defines a catalog of known gg failure modes with Markdown
// guidance, and error types that carry remediation suggestions, improving the
// user experience when errors occur during CLI operations.
package issue
