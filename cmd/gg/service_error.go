// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/glamour/styles"
	"github.com/mattn/go-isatty"

	"github.com/ggtools/gg/internal/config"
	"github.com/ggtools/gg/internal/dispatch"
	"github.com/ggtools/gg/internal/git"
	"github.com/ggtools/gg/internal/issue"
	"github.com/ggtools/gg/internal/script"
	"github.com/ggtools/gg/pkg/types"
)

// ServiceError is an application error with an optional issue catalog entry
// for the CLI layer to render. Always create via newServiceError to enforce
// the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps errors of the lower layers to their CLI form. Errors
// it does not know are returned unchanged.
func classifyError(err error) error {
	var (
		exitStatus *script.ExitStatusError
		notFound   *script.NotFoundError
		execErr    *script.ExecError
		unknown    *dispatch.UnknownSubcommandError
		parseErr   *config.ParseError
		readErr    *config.ReadError
	)

	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitStatus):
		// The child already reported its failure.
		return &ExitError{Code: types.ExitCode(exitStatus.Code)}
	case errors.Is(err, script.ErrNoScriptSpecified):
		return newServiceError(err, issue.NoScriptSpecifiedId)
	case errors.As(err, &notFound):
		return newServiceError(err, issue.ScriptNotFoundId)
	case errors.As(err, &unknown):
		return newServiceError(err, issue.UnknownSubcommandId)
	case errors.As(err, &parseErr):
		return newServiceError(err, issue.ConfigParseErrorId)
	case errors.As(err, &readErr):
		return newServiceError(err, issue.ConfigLoadFailedId)
	case errors.As(err, &execErr):
		actionable := issue.NewErrorContext().
			WithOperation("run script").
			WithIssue(issue.ExecFailedId).
			WithSuggestion("Check that " + execErr.Program + " is installed and on your PATH").
			WithSuggestion("Run 'gg config show' to see the script's command line").
			Wrap(err).
			Build()
		return newServiceError(actionable, issue.ExecFailedId)
	case git.IsUnavailable(err):
		return newServiceError(err, issue.GitUnavailableId)
	default:
		return err
	}
}

// handleError is the fang error handler. Application errors are rendered
// by gg; Cobra grammar errors keep fang's rendering.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var (
		svcErr  *ServiceError
		exitErr *ExitError
	)
	if errors.As(err, &svcErr) || errors.As(err, &exitErr) {
		// fang wraps the writer; the terminal check needs the real stream.
		renderErrorStyled(w, err, a.settings.Verbose, issueStyle(a.stderr))
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// renderError prints "Error: <message>" to w. Suggestions of an
// ActionableError are listed below the message; in verbose mode the error
// chain and the issue catalog entry follow.
func renderError(w io.Writer, err error, verbose bool) {
	renderErrorStyled(w, err, verbose, issueStyle(w))
}

// renderErrorStyled is renderError with an explicit glamour style for the
// issue catalog entry.
func renderErrorStyled(w io.Writer, err error, verbose bool, style string) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	msg := err.Error()
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		msg = ae.Format(verbose)
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), msg)

	if !verbose {
		return
	}

	id, ok := issueIDOf(err)
	if !ok {
		return
	}
	if catalogEntry := issue.Get(id); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(style)
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", id, "error", renderErr)
			return
		}
		fmt.Fprint(w, rendered)
	}
}

// issueStyle returns the dark glamour style for a terminal and the plain
// notty style for anything else or when NO_COLOR is set.
func issueStyle(w io.Writer) string {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(f.Fd()) {
		return styles.NoTTYStyle
	}
	return styles.DarkStyle
}

func issueIDOf(err error) (issue.Id, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.IssueID != 0 {
		return svcErr.IssueID, true
	}
	return issue.IssueOf(err)
}
