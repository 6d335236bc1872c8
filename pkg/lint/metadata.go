package lint

import "fmt"

// RuleInfo describes one rule for catalogs and documentation output.
type RuleInfo struct {
	// Name is the configuration key that toggles the rule.
	Name string `json:"name"`
	// Code is the stable diagnostic code, when the rule defines one.
	Code     string   `json:"code,omitempty"`
	Severity Severity `json:"severity"`
	// Default reports whether the rule is on in DefaultConfig.
	Default bool   `json:"default"`
	Summary string `json:"summary"`
}

// Rules returns the rule catalog in the order the engine runs them.
func Rules() []RuleInfo {
	return []RuleInfo{
		{
			Name:     "trailingWhitespace",
			Code:     "trailing-whitespace",
			Severity: SeverityHint,
			Default:  true,
			Summary:  "Flags lines ending in spaces or tabs.",
		},
		{
			Name:     "hiveVariable",
			Severity: SeverityWarning,
			Default:  true,
			Summary:  "Validates ${namespace:name} Hive variable references.",
		},
		{
			Name:     "stringLiteral",
			Severity: SeverityError,
			Default:  true,
			Summary:  "Reports input the tokenizer cannot scan, such as an unterminated string.",
		},
		{
			Name:     "keywordCasing",
			Code:     "keyword-casing",
			Severity: SeverityWarning,
			Default:  false,
			Summary:  "Requires recognized SQL keywords to be written in uppercase.",
		},
		{
			Name:     "semicolon",
			Code:     "missing-semicolon",
			Severity: SeverityInfo,
			Default:  true,
			Summary:  "Detects statements that are not terminated by a semicolon.",
		},
		{
			Name:     "parentheses",
			Severity: SeverityError,
			Default:  true,
			Summary:  "Detects unbalanced parentheses.",
		},
		{
			Name:     "missingComma",
			Code:     "missing-comma",
			Severity: SeverityWarning,
			Default:  false,
			Summary:  "Heuristically detects missing commas in multi-line SELECT lists.",
		},
	}
}

// SetRule flips one named rule toggle. Names match the configuration
// keys reported by Rules.
func (c *Config) SetRule(name string, enabled bool) error {
	switch name {
	case "trailingWhitespace":
		c.TrailingWhitespace = enabled
	case "hiveVariable":
		c.HiveVariable = enabled
	case "stringLiteral":
		c.StringLiteral = enabled
	case "keywordCasing":
		c.KeywordCasing = enabled
	case "semicolon":
		c.Semicolon = enabled
	case "parentheses":
		c.Parentheses = enabled
	case "missingComma":
		c.MissingComma = enabled
	default:
		return fmt.Errorf("unknown rule %q", name)
	}
	return nil
}
