// SPDX-License-Identifier: MPL-2.0

// Package config discovers and parses the repository configuration file
// that declares gg scripts, and loads the tool's own settings.
//
// The repository configuration is a JSON document found under one of the
// names in CandidateFiles, probed in order in a single directory. Locator
// first asks a RootFinder for the repository top-level directory and falls
// back to the starting directory when no repository can be found.
//
// Tool settings (verbosity, git executable) come from GG_-prefixed
// environment variables and command-line flags through Viper.
package config
