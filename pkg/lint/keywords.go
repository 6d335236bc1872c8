package lint

import "github.com/hqltools/hqlint/pkg/hql"

// The keyword catalogs below are closed sets specific to the rules in
// this package. The casing rule's vocabulary is hql.Keywords, shared
// with the formatter.

// statementStarters are keywords that can begin a new top-level
// statement when seen at parenthesis depth zero.
var statementStarters = makeSet(
	"SELECT", "INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER",
	"TRUNCATE", "WITH", "MERGE", "SHOW", "DESCRIBE", "EXPLAIN", "SET", "USE",
)

// selectContinues holds the open statements that a SELECT at depth
// zero extends instead of terminating: WITH ... SELECT, INSERT INTO t
// SELECT, CREATE TABLE t AS SELECT, EXPLAIN SELECT.
var selectContinues = makeSet("WITH", "INSERT", "CREATE", "EXPLAIN")

// clauseStarters suppress the missing-comma heuristic: a line break
// next to one of these words is a clause or alias boundary, not a
// column list continuation. The set is Hive-flavored (LATERAL VIEW,
// DISTRIBUTE/SORT/CLUSTER BY, SEMI/ANTI joins).
var clauseStarters = makeSet(
	"FROM", "WHERE", "GROUP", "ORDER", "HAVING", "LIMIT", "BY",
	"JOIN", "INNER", "LEFT", "RIGHT", "FULL", "OUTER", "CROSS", "SEMI", "ANTI",
	"LATERAL", "VIEW", "ON", "USING",
	"UNION", "ALL", "INTERSECT", "EXCEPT",
	"AND", "OR", "NOT", "IN", "IS", "BETWEEN", "LIKE", "RLIKE",
	"AS", "CASE", "WHEN", "THEN", "ELSE", "END",
	"OVER", "PARTITION", "WINDOW", "ROWS", "RANGE",
	"DISTRIBUTE", "SORT", "CLUSTER",
)

// hiveNamespaces indexes hql.VariableNamespaces for the variable
// reference rule.
var hiveNamespaces = makeSet(hql.VariableNamespaces()...)

func makeSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func inSet(set map[string]struct{}, word string) bool {
	_, ok := set[word]
	return ok
}
