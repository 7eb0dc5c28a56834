// Package cli implements the choices companion tool: compile, inspect and
// watch YAML registry declarations.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/choices/internal/catalog"
	"github.com/zjrosen/choices/internal/config"
	"github.com/zjrosen/choices/internal/declfile"
	"github.com/zjrosen/choices/internal/log"
)

var version = "dev"

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
}

// NewRootCmd builds the full command tree. Each invocation gets a fresh
// tree and viper instance so tests do not share state.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		debug   bool
		cfg     config.Config
		v       = viper.New()
	)

	rootCmd := &cobra.Command{
		Use:           "choices",
		Short:         "Compile and inspect registry declarations",
		Long:          `A tool for validating and inspecting YAML declarations of choices registries: named constants with stored values, display labels and params.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug || os.Getenv("CHOICES_DEBUG") != "" {
				log.InitWriter(cmd.ErrOrStderr())
				log.Debug(log.CatCLI, "Debug logging enabled")
			}
			var err error
			cfg, err = loadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .choices/config.yaml, then ~/.config/choices/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"enable debug logging to stderr")

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func loadConfig(v *viper.Viper, cfgFile string) (config.Config, error) {
	defaults := config.Defaults()
	v.SetDefault("locale", defaults.Locale)
	v.SetDefault("debounce_ms", defaults.DebounceMS)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .choices/config.yaml (current directory)
		// 2. ~/.config/choices/config.yaml (user config)
		if _, err := os.Stat(".choices/config.yaml"); err == nil {
			v.SetConfigFile(".choices/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			v.AddConfigPath(filepath.Join(home, ".config", "choices"))
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			// No config file found anywhere - create default at .choices/config.yaml
			defaultPath := filepath.Join(".choices", "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				v.SetConfigFile(defaultPath)
				_ = v.ReadInConfig()
				log.Debug(log.CatConfig, "Default config created", "file", defaultPath)
			}
			// If write fails, just continue with defaults (no config file)
		} else if cfgFile != "" {
			return config.Config{}, fmt.Errorf("reading config: %w", err)
		}
	} else {
		log.Debug(log.CatConfig, "Config loaded", "file", v.ConfigFileUsed())
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// declPaths resolves the declaration files for a command: explicit args
// win, then the config's paths.
func declPaths(cfg config.Config, args []string) ([]string, error) {
	paths := args
	if len(paths) == 0 {
		paths = cfg.Paths
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no declaration files: pass paths or set 'paths' in the config")
	}
	return paths, nil
}

// labelProvider builds the locale catalog when one is configured.
func labelProvider(cfg config.Config) (declfile.LabelProvider, error) {
	if cfg.LocaleDir == "" {
		return nil, nil
	}
	cat := catalog.New(cfg.Locale)
	if err := cat.LoadDir(cfg.LocaleDir); err != nil {
		return nil, err
	}
	return cat, nil
}
