// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is an error with context for user-facing error messages:
	// what operation failed, which resource was involved, and how to fix it.
	//
	// Use the ErrorContext builder for convenient construction:
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("load configuration").
	//		WithResource("/repo/.ggrc.json").
	//		WithIssue(issue.ConfigParseErrorId).
	//		WithSuggestion("Run 'gg config dump' to see what was understood").
	//		Wrap(originalErr).
	//		Build()
	ActionableError struct {
		// Operation is a verb phrase such as "load configuration" or "run script".
		Operation string

		// Resource identifies the file, script or program involved (optional).
		Resource string

		// Issue links the error to a catalog entry (optional, zero means none).
		Issue Id

		// Suggestions provides hints on how to fix the issue (optional).
		Suggestions []string

		// Cause is the underlying error (optional).
		Cause error
	}

	// ErrorContext is a builder for ActionableError instances.
	ErrorContext struct {
		operation   string
		resource    string
		issue       Id
		suggestions []string
		cause       error
	}
)

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error returns "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)

	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}

	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap returns the underlying cause error for use with errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format returns the error message followed by its suggestions as a bullet
// list. When verbose is true the full error chain is appended:
//
//	failed to <operation>: <resource>: <cause message>
//	  • <suggestion 1>
//
//	Error chain:
//	  1. <cause>
//	  2. <cause of cause>
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder

	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, suggestion := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(suggestion)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}

	return msg.String()
}

// HasSuggestions returns true if the error has any suggestions.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// WithOperation sets the operation being performed.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the resource (file, script, program) involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithIssue links the error to a catalog entry.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.issue = id
	return c
}

// WithSuggestion adds a suggestion. Can be called multiple times.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// Wrap sets the underlying error.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build creates an ActionableError from the context.
// Returns nil if no operation is set (operation is required).
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}

	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Issue:       c.issue,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}

// IssueOf returns the catalog Id of the first ActionableError in err's
// chain that has one.
func IssueOf(err error) (Id, bool) {
	for err != nil {
		var ae *ActionableError
		if !errors.As(err, &ae) {
			return 0, false
		}
		if ae.Issue != 0 {
			return ae.Issue, true
		}
		err = ae.Cause
	}
	return 0, false
}
