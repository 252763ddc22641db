// SPDX-License-Identifier: MPL-2.0

package git

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// markerDir is the directory whose presence marks a working tree root.
const markerDir = ".git"

// RootFinder locates repository roots with a configurable git executable.
// The zero value uses DefaultBinary.
type RootFinder struct {
	Binary string
}

// Root returns the top-level directory of the working tree containing dir.
func (f RootFinder) Root(ctx context.Context, dir string) (string, error) {
	return New(dir, WithBinary(f.Binary)).Root(ctx)
}

// Root asks git for the top-level directory of the working tree that
// contains the client directory. Trailing whitespace is trimmed from git's
// answer. The result is never cached.
func (c *Client) Root(ctx context.Context) (string, error) {
	out, err := c.Run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}

	if !utf8.Valid(out.Stdout) {
		return "", ErrInvalidOutput
	}

	root := strings.TrimRightFunc(string(out.Stdout), isSpace)
	if root == "" {
		return "", fmt.Errorf("rev-parse --show-toplevel: %w", ErrEmptyOutput)
	}

	return filepath.FromSlash(root), nil
}

// IsRoot reports whether the client directory directly contains a .git
// entry. No subprocess is started.
func (c *Client) IsRoot() (bool, error) {
	_, err := os.Stat(filepath.Join(c.dir, markerDir))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check repository marker: %w", err)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
