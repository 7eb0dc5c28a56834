// Package config provides configuration types and defaults for the choices
// companion tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the tool.
type Config struct {
	// Paths lists declaration files loaded when no paths are given on the
	// command line.
	Paths []string `mapstructure:"paths" yaml:"paths"`

	// LocaleDir points at the directory of locale tables (en.yaml, ...).
	// Empty disables display_key resolution.
	LocaleDir string `mapstructure:"locale_dir" yaml:"locale_dir"`

	// Locale selects the active locale table.
	Locale string `mapstructure:"locale" yaml:"locale"`

	// DebounceMS is the watch-mode debounce window in milliseconds.
	DebounceMS int `mapstructure:"debounce_ms" yaml:"debounce_ms"`

	// Flags holds feature flags consulted by commands, e.g.
	// reload_changed_only switches watch mode from recompiling the full
	// path set to recompiling only the files that changed.
	Flags map[string]bool `mapstructure:"flags" yaml:"flags,omitempty"`
}

// Flag reports whether the named feature flag is enabled. Absent flags are
// off.
func (c Config) Flag(name string) bool {
	return c.Flags[name]
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Locale:     "en",
		DebounceMS: 500,
	}
}

// Debounce returns the watch debounce window as a duration.
func (c Config) Debounce() time.Duration {
	if c.DebounceMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// WriteDefaultConfig writes the default config as YAML to path, creating
// parent directories as needed. Fails if the file already exists.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	content, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
