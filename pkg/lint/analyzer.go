package lint

import (
	"errors"

	"github.com/hqltools/hqlint/pkg/hql"
	"github.com/hqltools/hqlint/pkg/token"
)

// Run lints text under one configuration snapshot and returns findings
// in rule order: trailing whitespace, Hive variables, then — when the
// input tokenizes — keyword casing, statement boundaries, parentheses,
// and missing commas. Each rule is gated by its own toggle and results
// are concatenated; rules are independent, so order affects only the
// position of findings in the returned slice.
//
// A disabled engine or an input larger than MaxFileSize yields nil.
// That silent degradation is policy: the engine protects editor
// responsiveness rather than insisting on completeness.
func Run(text string, cfg Config) []Diagnostic {
	if !cfg.Enabled || len(text) > cfg.MaxFileSize {
		return nil
	}

	var diags []Diagnostic

	if cfg.TrailingWhitespace {
		diags = append(diags, checkTrailingWhitespace(text)...)
	}
	if cfg.HiveVariable {
		diags = append(diags, checkHiveVariables(text)...)
	}

	toks, err := hql.Tokenize(text)
	if err != nil {
		// Token rules all need a token stream; none of them run.
		if cfg.StringLiteral {
			diags = append(diags, tokenizeFailure(err))
		}
		return diags
	}

	if cfg.KeywordCasing {
		diags = append(diags, checkKeywordCasing(toks)...)
	}
	if cfg.Semicolon {
		diags = append(diags, checkStatementBoundaries(toks)...)
	}
	if cfg.Parentheses {
		diags = append(diags, checkParentheses(toks)...)
	}
	if cfg.MissingComma {
		diags = append(diags, checkMissingCommas(text, toks)...)
	}

	return diags
}

// tokenizeFailure converts a lexer error into a single Error-severity
// diagnostic carrying the lexer's message. The lexer exposes its
// position directly, so the diagnostic points at the offending byte;
// anything else lands at the start of the document.
func tokenizeFailure(err error) Diagnostic {
	span := token.Span{}
	var lexErr *hql.Error
	if errors.As(err, &lexErr) {
		span = pointAt(lexErr.Pos)
	}
	return Diagnostic{
		Span:     span,
		Severity: SeverityError,
		Message:  err.Error(),
	}
}
