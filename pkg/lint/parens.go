package lint

import (
	"fmt"

	"github.com/hqltools/hqlint/pkg/token"
)

// checkParentheses reports net imbalance over the whole stream. A
// stream that returns to balance produces nothing regardless of
// intermediate depth; the first token to drive the balance negative
// is remembered so the extra-')' case can point at it.
func checkParentheses(toks []token.Token) []Diagnostic {
	balance := 0
	firstNegative := -1

	for i, tok := range toks {
		switch tok.Kind {
		case token.LeftParen:
			balance++
		case token.RightParen:
			balance--
			if balance < 0 && firstNegative < 0 {
				firstNegative = i
			}
		}
	}

	switch {
	case balance > 0:
		// The precise location of the unclosed '(' is not recoverable
		// from a net count; the document start is the agreed anchor.
		return []Diagnostic{{
			Span:     token.Span{},
			Severity: SeverityError,
			Message:  fmt.Sprintf("Unbalanced parentheses: %d unclosed '('", balance),
		}}
	case balance < 0:
		return []Diagnostic{{
			Span:     zeroBased(toks[firstNegative].Span),
			Severity: SeverityError,
			Message:  "Unbalanced parentheses: extra ')'",
		}}
	default:
		return nil
	}
}
