package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesCatalog(t *testing.T) {
	rules := Rules()
	require.Len(t, rules, 7)

	// Every catalog name must be a valid SetRule key, and Default must
	// agree with DefaultConfig.
	for _, r := range rules {
		cfg := DefaultConfig()
		require.NoError(t, cfg.SetRule(r.Name, true), "rule %q", r.Name)
		assert.Equal(t, r.Default, ruleEnabled(DefaultConfig(), r.Name), "rule %q default", r.Name)
	}
}

func TestRulesCodesAreStable(t *testing.T) {
	codes := map[string]string{}
	for _, r := range Rules() {
		codes[r.Name] = r.Code
	}
	assert.Equal(t, "trailing-whitespace", codes["trailingWhitespace"])
	assert.Equal(t, "keyword-casing", codes["keywordCasing"])
	assert.Equal(t, "missing-semicolon", codes["semicolon"])
	assert.Equal(t, "missing-comma", codes["missingComma"])

	// The remaining rules deliberately publish no code.
	assert.Empty(t, codes["hiveVariable"])
	assert.Empty(t, codes["stringLiteral"])
	assert.Empty(t, codes["parentheses"])
}

func TestSetRule(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.SetRule("keywordCasing", true))
	assert.True(t, cfg.KeywordCasing)

	require.NoError(t, cfg.SetRule("semicolon", false))
	assert.False(t, cfg.Semicolon)

	err := cfg.SetRule("keyword-casing", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keyword-casing")
}

// ruleEnabled reads a toggle back by catalog name.
func ruleEnabled(cfg Config, name string) bool {
	switch name {
	case "trailingWhitespace":
		return cfg.TrailingWhitespace
	case "hiveVariable":
		return cfg.HiveVariable
	case "stringLiteral":
		return cfg.StringLiteral
	case "keywordCasing":
		return cfg.KeywordCasing
	case "semicolon":
		return cfg.Semicolon
	case "parentheses":
		return cfg.Parentheses
	case "missingComma":
		return cfg.MissingComma
	}
	return false
}
