package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names, in lookup order.
var configFileNames = []string{".hqlint.yaml", ".hqlint.yml", "hqlint.yaml"}

// maxUpwardSearchLevels limits how far up the directory tree to search
// for config files.
const maxUpwardSearchLevels = 10

// Package-level koanf instance and config file tracking.
var (
	k              = koanf.New(".")
	configFileUsed string
)

// configIn returns the path of the first config file present in dir,
// or "".
func configIn(dir string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigFile resolves the config file to use.
// Priority: explicit path > upward search from the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if path := configIn(dir); path != "" {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// canonicalSegments maps lowercased key segments back to the camelCase
// keys the koanf tags use. Environment variables arrive uppercased, so
// case has to be restored by table.
var canonicalSegments = map[string]string{
	"maxfilesize":         "maxFileSize",
	"keywordcasing":       "keywordCasing",
	"stringliteral":       "stringLiteral",
	"trailingwhitespace":  "trailingWhitespace",
	"missingcomma":        "missingComma",
	"hivevariable":        "hiveVariable",
	"keywordcase":         "keywordCase",
	"linesbetweenqueries": "linesBetweenQueries",
	"loglevel":            "logLevel",
}

// envToKey transforms HQLINT_LINTING__MAXFILESIZE into
// linting.maxFileSize.
func envToKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "HQLINT_"))
	parts := strings.Split(s, "__")
	for i, p := range parts {
		if canonical, ok := canonicalSegments[p]; ok {
			parts[i] = canonical
		}
	}
	return strings.Join(parts, ".")
}

// Reset clears the koanf instance. Used for testing.
func Reset() {
	k = koanf.New(".")
	configFileUsed = ""
}

// Load resolves configuration from defaults, the config file,
// environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for a fresh load
	k = koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load the config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (HQLINT_ prefix, __ separates
	// sections: HQLINT_LINTING__MAXFILESIZE -> linting.maxFileSize)
	if err := k.Load(env.Provider("HQLINT_", ".", envToKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set; --config is
			// the loader's own input, not a config key.
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			if f.Name == "log-level" {
				return "logLevel", posflag.FlagVal(flags, f)
			}
			return f.Name, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal and validate
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ConfigFileUsed returns the path of the config file the last Load
// read, if any.
func ConfigFileUsed() string {
	return configFileUsed
}

type loggerKey struct{}

type configKey struct{}

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Discard logger as a safe fallback
	return slog.New(slog.DiscardHandler)
}

// WithConfig stores the resolved configuration in the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the configuration from the context, falling
// back to the defaults.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok && c != nil {
		return c
	}
	return Default()
}
