package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hqltools/hqlint/pkg/hql"
	"github.com/hqltools/hqlint/pkg/token"
)

func mustTokenize(t *testing.T, text string) []token.Token {
	t.Helper()
	toks, err := hql.Tokenize(text)
	require.NoError(t, err)
	return toks
}

func TestTrailingWhitespace(t *testing.T) {
	diags := checkTrailingWhitespace("SELECT 1 \nFROM t\t\nclean")
	require.Len(t, diags, 2)

	assert.Equal(t, "Trailing whitespace", diags[0].Message)
	assert.Equal(t, "trailing-whitespace", diags[0].Code)
	assert.Equal(t, SeverityHint, diags[0].Severity)
	// Flagged at the column immediately after the trimmed content.
	assert.Equal(t, token.Position{Line: 0, Column: 8}, diags[0].Span.Start)
	assert.Equal(t, token.Position{Line: 0, Column: 9}, diags[0].Span.End)

	assert.Equal(t, token.Position{Line: 1, Column: 6}, diags[1].Span.Start)
	assert.Equal(t, token.Position{Line: 1, Column: 7}, diags[1].Span.End)
}

func TestTrailingWhitespaceCRLF(t *testing.T) {
	diags := checkTrailingWhitespace("a \r\nb\r\n")
	require.Len(t, diags, 1)
	assert.Equal(t, token.Position{Line: 0, Column: 1}, diags[0].Span.Start)
	assert.Equal(t, token.Position{Line: 0, Column: 2}, diags[0].Span.End)
}

func TestHiveVariables(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantMsg string // "" means no diagnostic
	}{
		{"valid hiveconf", "SELECT ${hiveconf:my_var}", ""},
		{"valid env inside string", "SELECT '${env:USER}' FROM t", ""},
		{"empty", "${}", "Empty Hive variable"},
		{"whitespace only", "${  }", "Empty Hive variable"},
		{"missing colon", "SET x=${novar};", "Invalid Hive variable: missing colon (expected ${namespace:name})"},
		{"invalid namespace", "${invalid:var}", "Invalid namespace 'invalid'. Expected: hiveconf, hivevar, env, system, define"},
		{"empty name", "${hivevar: }", "Variable name is empty"},
		{"valid define", "${define:d}", ""},
		{"valid system", "${system:java.version}", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := checkHiveVariables(tt.text)
			if tt.wantMsg == "" {
				assert.Empty(t, diags)
				return
			}
			require.Len(t, diags, 1)
			assert.Equal(t, tt.wantMsg, diags[0].Message)
			assert.Equal(t, SeverityWarning, diags[0].Severity)
		})
	}
}

func TestHiveVariablesOnePerMatch(t *testing.T) {
	diags := checkHiveVariables("${a:b} ${}")
	require.Len(t, diags, 2)
	assert.Contains(t, diags[0].Message, "Invalid namespace 'a'")
	assert.Equal(t, "Empty Hive variable", diags[1].Message)

	// Span covers the whole ${...} match.
	assert.Equal(t, token.Position{Line: 0, Column: 0}, diags[0].Span.Start)
	assert.Equal(t, token.Position{Line: 0, Column: 6}, diags[0].Span.End)
}

func TestKeywordCasing(t *testing.T) {
	toks := mustTokenize(t, "select * from users")
	diags := checkKeywordCasing(toks)
	require.Len(t, diags, 2)

	assert.Equal(t, "Keyword 'select' should be uppercase", diags[0].Message)
	assert.Equal(t, "keyword-casing", diags[0].Code)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Equal(t, token.Position{Line: 0, Column: 0}, diags[0].Span.Start)
	assert.Equal(t, token.Position{Line: 0, Column: 6, Offset: 6}, diags[0].Span.End)

	assert.Equal(t, "Keyword 'from' should be uppercase", diags[1].Message)
	assert.Equal(t, 9, diags[1].Span.Start.Column)
	assert.Equal(t, 13, diags[1].Span.End.Column)
}

func TestKeywordCasingClean(t *testing.T) {
	toks := mustTokenize(t, "SELECT * FROM users;")
	assert.Empty(t, checkKeywordCasing(toks))
}

func TestKeywordCasingQuotedIdentifier(t *testing.T) {
	// A quoted identifier is never a keyword, whatever its text says.
	toks := mustTokenize(t, "SELECT `from` FROM t")
	assert.Empty(t, checkKeywordCasing(toks))

	toks = mustTokenize(t, "SELECT `from` from t")
	diags := checkKeywordCasing(toks)
	require.Len(t, diags, 1)
	assert.Equal(t, "Keyword 'from' should be uppercase", diags[0].Message)
}

func TestKeywordCasingMixedCase(t *testing.T) {
	toks := mustTokenize(t, "Select 1")
	diags := checkKeywordCasing(toks)
	require.Len(t, diags, 1)
	assert.Equal(t, "Keyword 'Select' should be uppercase", diags[0].Message)
}

func TestParenthesesUnclosed(t *testing.T) {
	toks := mustTokenize(t, "SELECT * FROM users WHERE (id = 1")
	diags := checkParentheses(toks)
	require.Len(t, diags, 1)

	assert.Equal(t, "Unbalanced parentheses: 1 unclosed '('", diags[0].Message)
	assert.Equal(t, SeverityError, diags[0].Severity)
	// Anchored at the document start.
	assert.Equal(t, token.Span{}, diags[0].Span)

	toks = mustTokenize(t, "((a)")
	diags = checkParentheses(toks)
	require.Len(t, diags, 1)
	assert.Equal(t, "Unbalanced parentheses: 1 unclosed '('", diags[0].Message)
}

func TestParenthesesExtra(t *testing.T) {
	toks := mustTokenize(t, "SELECT a)")
	diags := checkParentheses(toks)
	require.Len(t, diags, 1)

	assert.Equal(t, "Unbalanced parentheses: extra ')'", diags[0].Message)
	assert.Equal(t, SeverityError, diags[0].Severity)
	// Positioned at the first offending token.
	assert.Equal(t, 8, diags[0].Span.Start.Column)
	assert.Equal(t, 9, diags[0].Span.End.Column)
}

func TestParenthesesBalanced(t *testing.T) {
	tests := []string{
		"SELECT ((a + (b)) * (c))",
		"SELECT count(*) FROM (SELECT 1) t",
		// A negative excursion that returns to zero stays quiet: net
		// balance is the only thing this rule judges.
		"())(",
	}
	for _, text := range tests {
		toks := mustTokenize(t, text)
		assert.Empty(t, checkParentheses(toks), "text %q", text)
	}
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "information", SeverityInfo.String())
	assert.Equal(t, "hint", SeverityHint.String())
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]Severity{
		"Error":       SeverityError,
		"warning":     SeverityWarning,
		"Information": SeverityInfo,
		"info":        SeverityInfo,
		"HINT":        SeverityHint,
	} {
		got, err := ParseSeverity(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	_, err := ParseSeverity("loud")
	assert.Error(t, err)
}

func TestSeverityAtLeast(t *testing.T) {
	assert.True(t, SeverityError.AtLeast(SeverityWarning))
	assert.True(t, SeverityWarning.AtLeast(SeverityWarning))
	assert.False(t, SeverityInfo.AtLeast(SeverityWarning))
	assert.False(t, SeverityHint.AtLeast(SeverityWarning))
}
