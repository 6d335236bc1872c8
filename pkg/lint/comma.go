package lint

import (
	"strings"

	"github.com/hqltools/hqlint/pkg/token"
)

// checkMissingCommas flags adjacent word pairs that sit on different
// lines with no comma ending the first line and no clause keyword on
// either side. "Adjacent" skips whitespace and comments only: any
// other token in between (a comma, an operator, a paren) breaks the
// pair. The rule never fires within a single line, so aliases written
// without AS stay quiet.
func checkMissingCommas(text string, toks []token.Token) []Diagnostic {
	var diags []Diagnostic

	prev := -1 // index of the previous significant token
	for i, tok := range toks {
		if !tok.Significant() {
			continue
		}
		if prev >= 0 && isCommaGap(text, toks[prev], tok) {
			diags = append(diags, Diagnostic{
				Span:     pointAt(toks[prev].Span.End),
				Severity: SeverityWarning,
				Code:     "missing-comma",
				Message:  "Possible missing comma between columns in SELECT list",
			})
		}
		prev = i
	}
	return diags
}

// isCommaGap decides whether the break between two adjacent
// significant tokens looks like a forgotten comma in a column list.
func isCommaGap(text string, first, second token.Token) bool {
	if first.Kind != token.Word || second.Kind != token.Word {
		return false
	}
	if second.Span.Start.Line <= first.Span.End.Line {
		return false
	}
	if commaBeforeLineEnd(text, first.Span.End.Offset) {
		return false
	}
	// A clause keyword on either side marks an expected boundary, as
	// does a first word of SELECT (the first column of the list).
	if inSet(clauseStarters, bareUpper(second)) {
		return false
	}
	firstUpper := bareUpper(first)
	if inSet(clauseStarters, firstUpper) || firstUpper == "SELECT" {
		return false
	}
	return true
}

// bareUpper returns the uppercased text of an unquoted word, or ""
// for quoted identifiers, which never count as keywords.
func bareUpper(tok token.Token) string {
	if tok.Quoted {
		return ""
	}
	return strings.ToUpper(tok.Text)
}

// commaBeforeLineEnd reports whether a comma is the first non-space
// character after the given offset, looking no further than the end
// of the line.
func commaBeforeLineEnd(text string, from int) bool {
	for i := from; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\r':
			// keep looking
		case ',':
			return true
		default:
			return false
		}
	}
	return false
}
