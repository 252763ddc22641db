// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ggtools/gg/internal/git"
)

// EnvPrefix is the prefix of environment variables read into Settings
// (e.g. GG_VERBOSE, GG_GIT).
const EnvPrefix = "GG"

const (
	// SettingVerbose is the key for verbose output.
	SettingVerbose = "verbose"
	// SettingGit is the key for the git executable.
	SettingGit = "git"
)

// Settings are the tool's own options, as opposed to the repository
// configuration.
type Settings struct {
	// Verbose enables debug logging and issue help on errors.
	Verbose bool `mapstructure:"verbose"`
	// Git is the git executable used for repository root lookup.
	Git string `mapstructure:"git"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Verbose: false,
		Git:     git.DefaultBinary,
	}
}

// LoadSettings merges defaults, GG_* environment variables and, when flags
// is non-nil, any explicitly set flags named after the setting keys. Flags
// take precedence over the environment.
func LoadSettings(flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	defaults := DefaultSettings()
	v.SetDefault(SettingVerbose, defaults.Verbose)
	v.SetDefault(SettingGit, defaults.Git)

	if flags != nil {
		for _, key := range []string{SettingVerbose, SettingGit} {
			flag := flags.Lookup(key)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return defaults, fmt.Errorf("failed to bind flag %q: %w", key, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return defaults, fmt.Errorf("failed to parse settings: %w", err)
	}
	if s.Git == "" {
		s.Git = defaults.Git
	}
	return s, nil
}
