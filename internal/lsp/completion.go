package lsp

import "github.com/hqltools/hqlint/pkg/hql"

// completionCatalog is assembled once at startup. Nothing in it
// depends on the document or cursor position, so every request shares
// the same items.
var completionCatalog = buildCompletionCatalog()

// phraseVocabulary extends the single-word keyword set with multi-word
// constructs and the Hive DDL vocabulary. Single words listed here are
// completion-only: they are not casing keywords.
var phraseVocabulary = []string{
	"GROUP BY", "ORDER BY", "SORT BY", "DISTRIBUTE BY", "CLUSTER BY",
	"INNER JOIN", "LEFT JOIN", "RIGHT JOIN", "FULL OUTER JOIN", "CROSS JOIN",
	"LATERAL VIEW", "UNION", "UNION ALL", "WITH", "OFFSET",
	"INSERT INTO", "INSERT OVERWRITE", "CREATE TABLE", "DROP TABLE", "ALTER TABLE",
	"PARTITIONED BY", "STORED AS", "LOCATION", "TBLPROPERTIES",
	"IS NULL", "IS NOT NULL", "RLIKE", "REGEXP", "TRUE", "FALSE", "NULL",
}

func buildCompletionCatalog() []CompletionItem {
	var items []CompletionItem

	for _, kw := range hql.Keywords() {
		items = append(items, keywordItem(kw))
	}
	for _, kw := range phraseVocabulary {
		items = append(items, keywordItem(kw))
	}

	for _, ns := range hql.VariableNamespaces() {
		items = append(items, CompletionItem{
			Label:      ns,
			Kind:       CompletionItemKindVariable,
			Detail:     "Hive variable namespace",
			InsertText: ns + ":",
		})
	}

	return append(items, snippets...)
}

func keywordItem(kw string) CompletionItem {
	return CompletionItem{
		Label:  kw,
		Kind:   CompletionItemKindKeyword,
		Detail: "HQL keyword",
	}
}

// snippets are block templates in the editor snippet grammar: tab
// stops $1..$n, defaults ${1:label}, choices ${1|a,b|}.
var snippets = []CompletionItem{
	snippet("CREATE TABLE", "Create a new table",
		"CREATE ${1|TABLE,EXTERNAL TABLE|} ${2|IF NOT EXISTS ||}${3:table_name} (\n"+
			"  ${4:column_name} ${5:data_type}${6:,}\n"+
			"  ${7}\n"+
			")${8:\nPARTITIONED BY (${9:partition_column} ${10:data_type})}"+
			"${11:\nSTORED AS ${12|PARQUET,ORC,AVRO,TEXTFILE|}}"+
			"${13:\nLOCATION '${14:/path/to/location}'};\n$0"),

	snippet("INSERT OVERWRITE", "Insert overwrite into table",
		"INSERT OVERWRITE TABLE ${1:target_table}\n"+
			"${2:PARTITION (${3:partition_column}=${4:value})}\n"+
			"SELECT ${5:*}\n"+
			"FROM ${6:source_table}\n"+
			"${7:WHERE ${8:condition}};\n$0"),

	snippet("SELECT JOIN", "SELECT with JOIN",
		"SELECT ${1:t1}.${2:column1}, ${3:t2}.${4:column2}\n"+
			"FROM ${5:table1} ${1:t1}\n"+
			"${6|INNER,LEFT,RIGHT,FULL OUTER|} JOIN ${7:table2} ${3:t2}\n"+
			"  ON ${1:t1}.${8:id} = ${3:t2}.${9:id}\n"+
			"${10:WHERE ${11:condition}}\n"+
			"${12:ORDER BY ${13:column}};\n$0"),

	snippet("WINDOW FUNCTION", "Analytical function",
		"SELECT\n"+
			"  ${1:column},\n"+
			"  ${2|ROW_NUMBER,RANK,DENSE_RANK,LAG,LEAD,FIRST_VALUE,LAST_VALUE|}() OVER (\n"+
			"    ${3:PARTITION BY ${4:partition_column}}\n"+
			"    ORDER BY ${5:order_column} ${6|ASC,DESC|}\n"+
			"    ${7:ROWS BETWEEN ${8|UNBOUNDED PRECEDING,CURRENT ROW,1 PRECEDING|} AND ${9|CURRENT ROW,UNBOUNDED FOLLOWING,1 FOLLOWING|}}\n"+
			"  ) AS ${10:window_result}\n"+
			"FROM ${11:table_name};\n$0"),

	snippet("CASE WHEN", "CASE expression",
		"CASE\n"+
			"  WHEN ${1:condition1} THEN ${2:result1}\n"+
			"  WHEN ${3:condition2} THEN ${4:result2}\n"+
			"  ${5:ELSE ${6:default_result}}\n"+
			"END AS ${7:result_column}$0"),

	snippet("LATERAL VIEW EXPLODE", "Explode array/map",
		"SELECT ${1:t}.${2:column}, ${3:exploded_value}\n"+
			"FROM ${4:table_name} ${1:t}\n"+
			"LATERAL VIEW ${5|EXPLODE,POSEXPLODE|}(${6:array_column}) ${7:exploded_table} AS ${3:exploded_value};\n$0"),

	snippet("WITH CTE", "Common Table Expression",
		"WITH ${1:cte_name} AS (\n"+
			"  SELECT ${2:columns}\n"+
			"  FROM ${3:table_name}\n"+
			"  ${4:WHERE ${5:condition}}\n"+
			")${6:,\n${7:cte_name2} AS (\n  SELECT ${8:columns}\n  FROM ${9:table_name}\n)}\n"+
			"SELECT ${10:*}\n"+
			"FROM ${1:cte_name};\n$0"),
}

func snippet(label, detail, body string) CompletionItem {
	return CompletionItem{
		Label:            label,
		Kind:             CompletionItemKindSnippet,
		Detail:           detail,
		InsertText:       body,
		InsertTextFormat: InsertTextFormatSnippet,
	}
}
