package hql

import "strings"

// keywordList is the recognized HQL keyword vocabulary, shared by the
// casing lint rule, the formatter's case rewriting, and completion.
var keywordList = []string{
	"SELECT", "FROM", "WHERE", "GROUP", "BY", "HAVING", "ORDER", "LIMIT",
	"JOIN", "LEFT", "RIGHT", "INNER", "OUTER", "CROSS", "ON", "AS",
	"AND", "OR", "NOT", "IN", "EXISTS", "BETWEEN", "LIKE",
	"CASE", "WHEN", "THEN", "ELSE", "END",
	"INSERT", "INTO", "VALUES", "UPDATE", "DELETE",
	"CREATE", "TABLE", "DROP", "ALTER",
}

var keywordSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(keywordList))
	for _, k := range keywordList {
		set[k] = struct{}{}
	}
	return set
}()

// Keywords returns the keyword vocabulary in declaration order. The
// returned slice is a copy.
func Keywords() []string {
	out := make([]string, len(keywordList))
	copy(out, keywordList)
	return out
}

// IsKeyword reports whether word is a recognized keyword, ignoring
// case.
func IsKeyword(word string) bool {
	_, ok := keywordSet[strings.ToUpper(word)]
	return ok
}

// variableNamespaces are the valid ${namespace:name} prefixes, in the
// order tools present them.
var variableNamespaces = []string{"hiveconf", "hivevar", "env", "system", "define"}

// VariableNamespaces returns the valid Hive variable namespaces. The
// returned slice is a copy.
func VariableNamespaces() []string {
	out := make([]string, len(variableNamespaces))
	copy(out, variableNamespaces)
	return out
}
