package lint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hqltools/hqlint/pkg/hql"
	"github.com/hqltools/hqlint/pkg/token"
)

// checkTrailingWhitespace flags lines ending in spaces or tabs.
// Purely per-line; columns are byte lengths, so the span runs from
// the trimmed length to the raw length.
func checkTrailingWhitespace(text string) []Diagnostic {
	var diags []Diagnostic
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimRight(line, " \t")
		if len(trimmed) == len(line) {
			continue
		}
		diags = append(diags, Diagnostic{
			Span: token.Span{
				Start: token.Position{Line: i, Column: len(trimmed)},
				End:   token.Position{Line: i, Column: len(line)},
			},
			Severity: SeverityHint,
			Code:     "trailing-whitespace",
			Message:  "Trailing whitespace",
		})
	}
	return diags
}

// hiveVarPattern matches ${...} non-greedily; nested braces are not a
// thing in Hive variable references.
var hiveVarPattern = regexp.MustCompile(`\$\{[^}]*\}`)

// checkHiveVariables validates ${namespace:name} references. Exactly
// one diagnostic per match: the checks are mutually exclusive and the
// first applicable one wins.
func checkHiveVariables(text string) []Diagnostic {
	var diags []Diagnostic
	for i, line := range strings.Split(text, "\n") {
		for _, loc := range hiveVarPattern.FindAllStringIndex(line, -1) {
			start, end := loc[0], loc[1]
			msg := classifyHiveVariable(line[start+2 : end-1])
			if msg == "" {
				continue
			}
			diags = append(diags, Diagnostic{
				Span: token.Span{
					Start: token.Position{Line: i, Column: start},
					End:   token.Position{Line: i, Column: end},
				},
				Severity: SeverityWarning,
				Message:  msg,
			})
		}
	}
	return diags
}

// classifyHiveVariable returns what is wrong with the inner text of a
// ${...} reference, or "" when the reference is well-formed.
func classifyHiveVariable(inner string) string {
	if strings.TrimSpace(inner) == "" {
		return "Empty Hive variable"
	}
	idx := strings.Index(inner, ":")
	if idx < 0 {
		return "Invalid Hive variable: missing colon (expected ${namespace:name})"
	}
	namespace, name := inner[:idx], inner[idx+1:]
	if !inSet(hiveNamespaces, namespace) {
		return fmt.Sprintf("Invalid namespace '%s'. Expected: %s",
			namespace, strings.Join(hql.VariableNamespaces(), ", "))
	}
	if strings.TrimSpace(name) == "" {
		return "Variable name is empty"
	}
	return ""
}
