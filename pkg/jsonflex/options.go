// SPDX-License-Identifier: MPL-2.0

package jsonflex

// DefaultMaxFileSize is the default maximum document size accepted by ParseFile (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

type (
	// parseOptions holds configuration for ParseFile.
	parseOptions struct {
		maxFileSize int64
		filename    string
	}

	// Option configures parsing behavior.
	Option func(*parseOptions)
)

// defaultOptions returns the default parse options.
func defaultOptions() parseOptions {
	return parseOptions{
		maxFileSize: DefaultMaxFileSize,
		filename:    "",
	}
}

// WithMaxFileSize sets the maximum allowed document size.
// Default is DefaultMaxFileSize (5MB).
func WithMaxFileSize(size int64) Option {
	return func(o *parseOptions) {
		o.maxFileSize = size
	}
}

// WithFilename sets the filename used in error messages.
func WithFilename(name string) Option {
	return func(o *parseOptions) {
		o.filename = name
	}
}
