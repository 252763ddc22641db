// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ggtools/gg/pkg/jsonflex"
)

var (
	// ErrInvalidConfig is the sentinel error wrapped by ParseError.
	ErrInvalidConfig = errors.New("invalid configuration")
)

type (
	// Config is the parsed repository configuration. It is read-only once
	// parsed.
	Config struct {
		// Version is the required gg version ("gg" key). Empty means no constraint.
		Version string `json:"gg,omitempty"`
		// Scripts maps script names to their definitions. Never nil after parsing.
		Scripts Scripts `json:"scripts"`
	}

	// Scripts maps script names to definitions given in scalar or structured form.
	Scripts = jsonflex.Map[ScriptDef, *ScriptDef]

	// ScriptDef is a named script definition. It can be written as a bare
	// command string or as an object; the object form carries no fields yet.
	ScriptDef struct {
		// command is the scalar form's text; it is not a structured field.
		command string
	}

	// LoadedConfig pairs a parsed configuration with the file it came from.
	LoadedConfig struct {
		Path   string
		Config *Config
	}

	// ReadError is returned when a configuration file cannot be read.
	// It wraps the underlying fs error, so errors.Is(err, fs.ErrNotExist)
	// identifies a missing file.
	ReadError struct {
		Path string
		Err  error
	}

	// ParseError is returned when a configuration file is not valid. It
	// wraps both ErrInvalidConfig and the decode error.
	ParseError struct {
		Path string
		Err  error
	}
)

// NewScriptDef returns the definition for a scalar-form script.
func NewScriptDef(command string) ScriptDef {
	return ScriptDef{command: command}
}

// DecodeString builds a definition from the scalar form. It never fails.
func (s *ScriptDef) DecodeString(v string) error {
	s.command = v
	return nil
}

// Command returns the command text of a scalar-form definition, or "" for
// the structured form.
func (s ScriptDef) Command() string { return s.command }

// Equal reports whether two definitions have equal structured fields. The
// scalar command text is not one of them, so "echo hi" and {} define equal
// scripts.
func (s ScriptDef) Equal(ScriptDef) bool { return true }

// BaseCommand returns the command line that name runs before trailing
// arguments are appended. The structured form runs the program named like
// the script.
func (s ScriptDef) BaseCommand(name string) string {
	if s.command == "" {
		return name
	}
	return s.command
}

// Script returns the definition for name and whether it exists.
func (c *Config) Script(name string) (ScriptDef, bool) {
	if c == nil {
		return ScriptDef{}, false
	}
	def, ok := c.Scripts[name]
	return def, ok
}

// HasScript reports whether name is a configured script.
func (c *Config) HasScript(name string) bool {
	_, ok := c.Script(name)
	return ok
}

// ConfigOrDefault returns the loaded configuration, or an empty one when no
// configuration file was found (nil receiver).
func (l *LoadedConfig) ConfigOrDefault() *Config {
	if l == nil || l.Config == nil {
		return Empty()
	}
	return l.Config
}

// Empty returns a configuration with no scripts and no version constraint.
func Empty() *Config {
	return &Config{Scripts: Scripts{}}
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read config %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying fs error.
func (e *ReadError) Unwrap() error { return e.Err }

// Error implements the error interface. The decode error is included verbatim.
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrInvalidConfig and the decode error.
func (e *ParseError) Unwrap() []error { return []error{ErrInvalidConfig, e.Err} }

// IsNotExist reports whether err means a configuration file does not exist.
// Discovery treats such candidates as "try the next name".
func IsNotExist(err error) bool {
	var readErr *ReadError
	return errors.As(err, &readErr) && errors.Is(readErr.Err, fs.ErrNotExist)
}
