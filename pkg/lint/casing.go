package lint

import (
	"fmt"
	"strings"

	"github.com/hqltools/hqlint/pkg/hql"
	"github.com/hqltools/hqlint/pkg/token"
)

// checkKeywordCasing flags recognized keywords written in anything
// other than full uppercase. A quoted identifier is never a keyword,
// no matter what its text says: columns and tables named after
// keywords stay quiet.
func checkKeywordCasing(toks []token.Token) []Diagnostic {
	var diags []Diagnostic
	for _, tok := range toks {
		if tok.Kind != token.Word || tok.Quoted {
			continue
		}
		if tok.Text == strings.ToUpper(tok.Text) || !hql.IsKeyword(tok.Text) {
			continue
		}
		diags = append(diags, Diagnostic{
			Span:     zeroBased(tok.Span),
			Severity: SeverityWarning,
			Code:     "keyword-casing",
			Message:  fmt.Sprintf("Keyword '%s' should be uppercase", tok.Text),
		})
	}
	return diags
}
