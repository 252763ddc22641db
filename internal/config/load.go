// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ggtools/gg/pkg/jsonflex"
)

// CandidateFiles lists the configuration file names in probe order. The
// first one that exists wins.
var CandidateFiles = [...]string{".ggrc.json", ".gg.json", "gg.config.json"}

type (
	// RootFinder locates the repository top-level directory containing dir.
	RootFinder interface {
		Root(ctx context.Context, dir string) (string, error)
	}

	// Locator discovers configuration files, preferring the repository root.
	Locator struct {
		roots RootFinder
	}
)

// NewLocator creates a Locator that consults roots for the repository root.
func NewLocator(roots RootFinder) *Locator {
	return &Locator{roots: roots}
}

// Parse decodes a configuration document. filename is used in error
// messages only.
func Parse(data []byte, filename string) (*Config, error) {
	cfg, err := jsonflex.ParseFile[Config](data, jsonflex.WithFilename(filename))
	if err != nil {
		var (
			fieldErr *jsonflex.FieldError
			kindErr  *jsonflex.KindError
		)
		if errors.As(err, &fieldErr) || errors.As(err, &kindErr) {
			// Scripts is the only flexible field; prefix its key path.
			err = &jsonflex.FieldError{Key: "scripts", Err: err}
		}
		return nil, err
	}

	if cfg.Scripts == nil {
		cfg.Scripts = Scripts{}
	}
	return cfg, nil
}

// Load reads and parses exactly one configuration file.
//
// An unreadable file yields a *ReadError and malformed content a
// *ParseError.
func Load(ctx context.Context, path string) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load config canceled: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	cfg, err := Parse(data, filepath.Base(path))
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return cfg, nil
}

// AutoLoad probes CandidateFiles in dir, in order, and returns the first
// one that exists, paired with its path.
//
// A missing candidate moves on to the next name. Any other failure,
// including a parse error or a candidate that cannot be read, stops the
// search and is returned. When no candidate exists AutoLoad returns
// (nil, nil).
func AutoLoad(ctx context.Context, dir string) (*LoadedConfig, error) {
	for _, name := range CandidateFiles {
		path := filepath.Join(dir, name)

		cfg, err := Load(ctx, path)
		if err == nil {
			slog.Debug("loaded configuration", "path", path)
			return &LoadedConfig{Path: path, Config: cfg}, nil
		}
		if !IsNotExist(err) {
			return nil, err
		}
	}

	slog.Debug("no configuration found", "dir", dir)
	return nil, nil
}

// AutoLoadForRepo runs AutoLoad in the repository root containing dir.
// When the root cannot be determined (not a repository, git unavailable)
// it searches dir itself.
func (l *Locator) AutoLoadForRepo(ctx context.Context, dir string) (*LoadedConfig, error) {
	if l.roots == nil {
		return AutoLoad(ctx, dir)
	}

	root, err := l.roots.Root(ctx, dir)
	if err != nil {
		slog.Debug("repository root unavailable, searching working directory", "dir", dir, "error", err)
		return AutoLoad(ctx, dir)
	}

	return AutoLoad(ctx, root)
}
