package config

// Default configuration values.
const (
	DefaultSeverity    = "Warning"
	DefaultMaxFileSize = 1 << 20
	DefaultLogLevel    = "info"
)

// Default returns the built-in configuration: linting on with every
// rule enabled except the two noisy heuristics (keyword casing and
// missing comma), formatting on with uppercase keywords and one blank
// line between statements.
func Default() *Config {
	return &Config{
		Linting: LintingConfig{
			Enabled:     true,
			Severity:    DefaultSeverity,
			MaxFileSize: DefaultMaxFileSize,
			Rules: RulesConfig{
				KeywordCasing:      false,
				Semicolon:          true,
				StringLiteral:      true,
				Parentheses:        true,
				TrailingWhitespace: true,
				MissingComma:       false,
				HiveVariable:       true,
			},
		},
		Formatting: FormattingConfig{
			Enabled:             true,
			KeywordCase:         "upper",
			LinesBetweenQueries: 1,
		},
		LogLevel: DefaultLogLevel,
	}
}

// defaultMap flattens Default into the dotted keys the confmap
// provider expects, so the load chain and Default never disagree.
func defaultMap() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"linting.enabled":                  d.Linting.Enabled,
		"linting.severity":                 d.Linting.Severity,
		"linting.maxFileSize":              d.Linting.MaxFileSize,
		"linting.rules.keywordCasing":      d.Linting.Rules.KeywordCasing,
		"linting.rules.semicolon":          d.Linting.Rules.Semicolon,
		"linting.rules.stringLiteral":      d.Linting.Rules.StringLiteral,
		"linting.rules.parentheses":        d.Linting.Rules.Parentheses,
		"linting.rules.trailingWhitespace": d.Linting.Rules.TrailingWhitespace,
		"linting.rules.missingComma":       d.Linting.Rules.MissingComma,
		"linting.rules.hiveVariable":       d.Linting.Rules.HiveVariable,
		"formatting.enabled":               d.Formatting.Enabled,
		"formatting.keywordCase":           d.Formatting.KeywordCase,
		"formatting.linesBetweenQueries":   d.Formatting.LinesBetweenQueries,
		"verbose":                          d.Verbose,
		"output":                           d.Output,
		"logLevel":                         d.LogLevel,
	}
}
