// SPDX-License-Identifier: MPL-2.0

package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// DefaultBinary is the executable name resolved through PATH.
const DefaultBinary = "git"

type (
	// Client runs git in a fixed directory.
	Client struct {
		dir    string
		binary string
	}

	// Option configures a Client.
	Option func(*Client)

	// Output is the captured output of a successful git invocation.
	Output struct {
		Stdout []byte
		Stderr []byte
	}
)

// WithBinary overrides the git executable. Empty values keep the default.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// New creates a Client rooted at dir.
func New(dir string, opts ...Option) *Client {
	c := &Client{dir: dir, binary: DefaultBinary}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir returns the directory git runs in.
func (c *Client) Dir() string { return c.dir }

// Run executes git with args in the client directory and captures its output.
//
// A missing executable yields an error wrapping ErrNotFound, a non-zero exit
// yields a *CommandError, and a missing working directory yields the
// underlying fs error.
func (c *Client) Run(ctx context.Context, args ...string) (*Output, error) {
	path, err := exec.LookPath(c.binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	slog.Debug("running git", "dir", c.dir, "args", args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = c.dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &CommandError{
				Args:     args,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return nil, fmt.Errorf("failed to run git: %w", err)
	}

	return &Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}
