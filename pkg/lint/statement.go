package lint

import (
	"strings"

	"github.com/hqltools/hqlint/pkg/token"
)

// checkStatementBoundaries walks the token stream left to right,
// tracking parenthesis depth and the statement currently open, and
// reports statements that run into the next one (or into end of file)
// without a terminating semicolon.
//
// All state is local to the call: the depth counter (clamped at zero;
// stray ')' is the parentheses rule's problem), the uppercased leading
// keyword of the open statement, and the index of the last significant
// token. A semicolon inside parentheses does not close the outer
// statement, and a statement-starter keyword inside parentheses (a
// subquery) never opens a new one.
//
// Continuation exception: SELECT at depth zero extends an open WITH,
// INSERT, CREATE, or EXPLAIN rather than starting a new statement
// (`WITH cte AS (...) SELECT`, `INSERT INTO t SELECT`, `CREATE TABLE
// t AS SELECT`, `EXPLAIN SELECT`). Every other starter at depth zero
// always begins a new tracked statement. This is a heuristic, not a
// parser; it reports at information severity.
func checkStatementBoundaries(toks []token.Token) []Diagnostic {
	var diags []Diagnostic

	parenDepth := 0
	openStatement := ""
	lastSignificant := -1

	for i, tok := range toks {
		switch tok.Kind {
		case token.LeftParen:
			parenDepth++

		case token.RightParen:
			if parenDepth > 0 {
				parenDepth--
			}

		case token.Semicolon:
			if parenDepth == 0 {
				openStatement = ""
			}

		case token.Word:
			if parenDepth != 0 || tok.Quoted {
				break
			}
			upper := strings.ToUpper(tok.Text)
			if !inSet(statementStarters, upper) {
				break
			}
			if upper == "SELECT" && inSet(selectContinues, openStatement) {
				break // same logical statement, nothing to report
			}
			if lastSignificant >= 0 && toks[lastSignificant].Kind != token.Semicolon {
				diags = append(diags, missingSemicolon(
					toks[lastSignificant], "Missing semicolon at end of statement"))
			}
			openStatement = upper
		}

		if tok.Significant() {
			lastSignificant = i
		}
	}

	if parenDepth == 0 && openStatement != "" &&
		lastSignificant >= 0 && toks[lastSignificant].Kind != token.Semicolon {
		diags = append(diags, missingSemicolon(
			toks[lastSignificant], "Missing semicolon at end of file"))
	}

	return diags
}

// missingSemicolon marks the exact point the punctuation belongs: a
// zero-width span at the end of the token the semicolon should follow.
func missingSemicolon(after token.Token, msg string) Diagnostic {
	return Diagnostic{
		Span:     pointAt(after.Span.End),
		Severity: SeverityInfo,
		Code:     "missing-semicolon",
		Message:  msg,
	}
}
