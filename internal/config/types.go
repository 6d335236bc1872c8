// Package config loads and watches hqlint configuration. It is
// decoupled from CLI concerns so the LSP server and other tools can
// reuse it.
package config

import (
	"fmt"

	"github.com/hqltools/hqlint/pkg/format"
	"github.com/hqltools/hqlint/pkg/lint"
)

// Config is the resolved tool configuration. Values merge from
// defaults, the config file, HQLINT_* environment variables, and
// command-line flags, in that order. The yaml tags let `hqlint init`
// write the file back with the same keys the loader reads.
type Config struct {
	Linting    LintingConfig    `koanf:"linting" yaml:"linting"`
	Formatting FormattingConfig `koanf:"formatting" yaml:"formatting"`

	Verbose  bool   `koanf:"verbose" yaml:"verbose,omitempty"`
	Output   string `koanf:"output" yaml:"output,omitempty"`
	LogLevel string `koanf:"logLevel" yaml:"logLevel,omitempty"`
}

// LintingConfig configures the diagnostic engine.
type LintingConfig struct {
	Enabled bool `koanf:"enabled" yaml:"enabled"`

	// Severity is the reporting threshold: `hqlint lint` fails when a
	// diagnostic at or above it was emitted. It never changes a rule's
	// own severity.
	Severity string `koanf:"severity" yaml:"severity"`

	MaxFileSize int         `koanf:"maxFileSize" yaml:"maxFileSize"`
	Rules       RulesConfig `koanf:"rules" yaml:"rules"`
}

// RulesConfig holds the per-rule toggles, keyed the way the config
// file spells them.
type RulesConfig struct {
	KeywordCasing      bool `koanf:"keywordCasing" yaml:"keywordCasing"`
	Semicolon          bool `koanf:"semicolon" yaml:"semicolon"`
	StringLiteral      bool `koanf:"stringLiteral" yaml:"stringLiteral"`
	Parentheses        bool `koanf:"parentheses" yaml:"parentheses"`
	TrailingWhitespace bool `koanf:"trailingWhitespace" yaml:"trailingWhitespace"`
	MissingComma       bool `koanf:"missingComma" yaml:"missingComma"`
	HiveVariable       bool `koanf:"hiveVariable" yaml:"hiveVariable"`
}

// FormattingConfig configures the formatter.
type FormattingConfig struct {
	Enabled             bool   `koanf:"enabled" yaml:"enabled"`
	KeywordCase         string `koanf:"keywordCase" yaml:"keywordCase"`
	LinesBetweenQueries int    `koanf:"linesBetweenQueries" yaml:"linesBetweenQueries"`
}

// RuleConfig converts the linting section into the engine's snapshot
// form.
func (l LintingConfig) RuleConfig() lint.Config {
	return lint.Config{
		Enabled:            l.Enabled,
		MaxFileSize:        l.MaxFileSize,
		KeywordCasing:      l.Rules.KeywordCasing,
		Semicolon:          l.Rules.Semicolon,
		StringLiteral:      l.Rules.StringLiteral,
		Parentheses:        l.Rules.Parentheses,
		TrailingWhitespace: l.Rules.TrailingWhitespace,
		MissingComma:       l.Rules.MissingComma,
		HiveVariable:       l.Rules.HiveVariable,
	}
}

// Threshold returns the failure threshold. Validate catches bad
// values at load time; anything unparseable here falls back to
// Warning.
func (l LintingConfig) Threshold() lint.Severity {
	s, err := lint.ParseSeverity(l.Severity)
	if err != nil {
		return lint.SeverityWarning
	}
	return s
}

// Options converts the formatting section into formatter options.
func (f FormattingConfig) Options() format.Options {
	kc, err := format.ParseKeywordCase(f.KeywordCase)
	if err != nil {
		kc = format.KeywordCaseUpper
	}
	return format.Options{
		Indent:              "  ",
		KeywordCase:         kc,
		LinesBetweenQueries: f.LinesBetweenQueries,
	}
}

// Validate rejects values that would otherwise fail silently deep in
// a command.
func (c *Config) Validate() error {
	if _, err := lint.ParseSeverity(c.Linting.Severity); err != nil {
		return fmt.Errorf("linting.severity: %w", err)
	}
	if c.Linting.MaxFileSize < 0 {
		return fmt.Errorf("linting.maxFileSize must not be negative, got %d", c.Linting.MaxFileSize)
	}
	if _, err := format.ParseKeywordCase(c.Formatting.KeywordCase); err != nil {
		return fmt.Errorf("formatting.keywordCase: %w", err)
	}
	if c.Formatting.LinesBetweenQueries < 0 {
		return fmt.Errorf("formatting.linesBetweenQueries must not be negative, got %d", c.Formatting.LinesBetweenQueries)
	}
	switch c.Output {
	case "", "text", "json", "markdown":
	default:
		return fmt.Errorf("output must be text, json or markdown, got %q", c.Output)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logLevel must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}
