package token

import "strings"

// keywords is the Spark/Databricks SQL keyword set, keyed by lower-cased
// spelling. It deliberately includes the built-in function names that SQL
// style guides re-case along with reserved words (COALESCE, CAST, ...);
// anything absent here is emitted as an identifier, untouched.
var keywords = map[string]struct{}{
	"add":               {},
	"after":             {},
	"all":               {},
	"alter":             {},
	"analyze":           {},
	"and":               {},
	"anti":              {},
	"any":               {},
	"array":             {},
	"as":                {},
	"asc":               {},
	"at":                {},
	"avg":               {},
	"between":           {},
	"bigint":            {},
	"binary":            {},
	"boolean":           {},
	"both":              {},
	"bucket":            {},
	"buckets":           {},
	"by":                {},
	"cache":             {},
	"call":              {},
	"cascade":           {},
	"case":              {},
	"cast":              {},
	"catalog":           {},
	"catalogs":          {},
	"change":            {},
	"check":             {},
	"clear":             {},
	"clone":             {},
	"cluster":           {},
	"clustered":         {},
	"coalesce":          {},
	"collate":           {},
	"column":            {},
	"columns":           {},
	"comment":           {},
	"commit":            {},
	"compute":           {},
	"concat":            {},
	"concat_ws":         {},
	"constraint":        {},
	"copy":              {},
	"cost":              {},
	"count":             {},
	"create":            {},
	"cross":             {},
	"cube":              {},
	"current":           {},
	"current_date":      {},
	"current_timestamp": {},
	"current_user":      {},
	"data":              {},
	"database":          {},
	"databases":         {},
	"date":              {},
	"day":               {},
	"decimal":           {},
	"default":           {},
	"delete":            {},
	"delta":             {},
	"dense_rank":        {},
	"deny":              {},
	"desc":              {},
	"describe":          {},
	"deterministic":     {},
	"distinct":          {},
	"distribute":        {},
	"div":               {},
	"double":            {},
	"drop":              {},
	"else":              {},
	"end":               {},
	"escape":            {},
	"except":            {},
	"exchange":          {},
	"exists":            {},
	"explain":           {},
	"export":            {},
	"extended":          {},
	"external":          {},
	"extract":           {},
	"false":             {},
	"fetch":             {},
	"filter":            {},
	"first":             {},
	"float":             {},
	"following":         {},
	"for":               {},
	"foreign":           {},
	"format":            {},
	"formatted":         {},
	"from":              {},
	"full":              {},
	"function":          {},
	"functions":         {},
	"generated":         {},
	"global":            {},
	"grant":             {},
	"group":             {},
	"grouping":          {},
	"having":            {},
	"hour":              {},
	"identity":          {},
	"if":                {},
	"ifnull":            {},
	"ignore":            {},
	"ilike":             {},
	"import":            {},
	"in":                {},
	"inner":             {},
	"insert":            {},
	"int":               {},
	"integer":           {},
	"intersect":         {},
	"interval":          {},
	"into":              {},
	"is":                {},
	"join":              {},
	"key":               {},
	"language":          {},
	"last":              {},
	"lateral":           {},
	"lazy":              {},
	"leading":           {},
	"left":              {},
	"like":              {},
	"limit":             {},
	"list":              {},
	"load":              {},
	"local":             {},
	"location":          {},
	"lock":              {},
	"long":              {},
	"map":               {},
	"matched":           {},
	"max":               {},
	"merge":             {},
	"min":               {},
	"minus":             {},
	"minute":            {},
	"month":             {},
	"msck":              {},
	"namespace":         {},
	"namespaces":        {},
	"natural":           {},
	"no":                {},
	"not":               {},
	"null":              {},
	"nullif":            {},
	"nulls":             {},
	"nvl":               {},
	"of":                {},
	"offset":            {},
	"on":                {},
	"only":              {},
	"optimize":          {},
	"option":            {},
	"options":           {},
	"or":                {},
	"order":             {},
	"out":               {},
	"outer":             {},
	"over":              {},
	"overwrite":         {},
	"partition":         {},
	"partitioned":       {},
	"partitions":        {},
	"pivot":             {},
	"position":          {},
	"preceding":         {},
	"primary":           {},
	"properties":        {},
	"purge":             {},
	"qualify":           {},
	"range":             {},
	"rank":              {},
	"recover":           {},
	"recursive":         {},
	"references":        {},
	"refresh":           {},
	"regexp":            {},
	"rename":            {},
	"repair":            {},
	"replace":           {},
	"reset":             {},
	"respect":           {},
	"restrict":          {},
	"return":            {},
	"returns":           {},
	"revoke":            {},
	"right":             {},
	"rlike":             {},
	"role":              {},
	"roles":             {},
	"rollback":          {},
	"rollup":            {},
	"row":               {},
	"row_number":        {},
	"rows":              {},
	"schema":            {},
	"schemas":           {},
	"second":            {},
	"select":            {},
	"semi":              {},
	"set":               {},
	"sets":              {},
	"show":              {},
	"smallint":          {},
	"some":              {},
	"sort":              {},
	"sorted":            {},
	"source":            {},
	"start":             {},
	"statistics":        {},
	"stored":            {},
	"string":            {},
	"struct":            {},
	"substr":            {},
	"substring":         {},
	"sum":               {},
	"sync":              {},
	"table":             {},
	"tables":            {},
	"tablesample":       {},
	"target":            {},
	"tblproperties":     {},
	"temp":              {},
	"temporary":         {},
	"then":              {},
	"time":              {},
	"timestamp":         {},
	"tinyint":           {},
	"to":                {},
	"trailing":          {},
	"transform":         {},
	"trim":              {},
	"true":              {},
	"truncate":          {},
	"try_cast":          {},
	"type":              {},
	"unbounded":         {},
	"uncache":           {},
	"union":             {},
	"unique":            {},
	"unpivot":           {},
	"unset":             {},
	"update":            {},
	"use":               {},
	"user":              {},
	"using":             {},
	"vacuum":            {},
	"values":            {},
	"varchar":           {},
	"view":              {},
	"views":             {},
	"when":              {},
	"where":             {},
	"window":            {},
	"with":              {},
	"year":              {},
	"zorder":            {},
}

// clauseKeywords is the subset of (possibly compound) keywords that always
// start a new output line, keyed by canonical text.
var clauseKeywords = map[string]struct{}{
	"SELECT":                     {},
	"FROM":                       {},
	"WHERE":                      {},
	"HAVING":                     {},
	"LIMIT":                      {},
	"OFFSET":                     {},
	"QUALIFY":                    {},
	"WITH":                       {},
	"WINDOW":                     {},
	"GROUP BY":                   {},
	"ORDER BY":                   {},
	"SORT BY":                    {},
	"DISTRIBUTE BY":              {},
	"CLUSTER BY":                 {},
	"PARTITION BY":               {},
	"PARTITIONED BY":             {},
	"CLUSTERED BY":               {},
	"SORTED BY":                  {},
	"ZORDER BY":                  {},
	"JOIN":                       {},
	"INNER JOIN":                 {},
	"CROSS JOIN":                 {},
	"LEFT JOIN":                  {},
	"LEFT OUTER JOIN":            {},
	"LEFT SEMI JOIN":             {},
	"LEFT ANTI JOIN":             {},
	"RIGHT JOIN":                 {},
	"RIGHT OUTER JOIN":           {},
	"RIGHT SEMI JOIN":            {},
	"RIGHT ANTI JOIN":            {},
	"FULL JOIN":                  {},
	"FULL OUTER JOIN":            {},
	"SEMI JOIN":                  {},
	"ANTI JOIN":                  {},
	"NATURAL JOIN":               {},
	"NATURAL INNER JOIN":         {},
	"NATURAL LEFT JOIN":          {},
	"NATURAL LEFT OUTER JOIN":    {},
	"NATURAL RIGHT JOIN":         {},
	"NATURAL RIGHT OUTER JOIN":   {},
	"NATURAL FULL JOIN":          {},
	"NATURAL FULL OUTER JOIN":    {},
	"LATERAL VIEW":               {},
	"LATERAL VIEW OUTER":         {},
	"ON":                         {},
	"USING":                      {},
	"UNION":                      {},
	"UNION ALL":                  {},
	"UNION DISTINCT":             {},
	"INTERSECT":                  {},
	"INTERSECT ALL":              {},
	"INTERSECT DISTINCT":         {},
	"EXCEPT":                     {},
	"EXCEPT ALL":                 {},
	"EXCEPT DISTINCT":            {},
	"MINUS":                      {},
	"SET":                        {},
	"VALUES":                     {},
	"TBLPROPERTIES":              {},
	"RETURNS":                    {},
	"RETURN":                     {},
	"LANGUAGE":                   {},
	"WHEN MATCHED":               {},
	"WHEN NOT MATCHED":           {},
	"WHEN NOT MATCHED BY SOURCE": {},
	"WHEN NOT MATCHED BY TARGET": {},
}

// mergePhrases maps a leading keyword to the suffix phrases it can absorb
// into a compound keyword. Phrases are ordered longest first so greedy
// first-fit matching picks LEFT OUTER JOIN over LEFT JOIN.
var mergePhrases = map[string][][]string{
	"GROUP":       {{"BY"}},
	"ORDER":       {{"BY"}},
	"SORT":        {{"BY"}},
	"DISTRIBUTE":  {{"BY"}},
	"CLUSTER":     {{"BY"}},
	"PARTITION":   {{"BY"}},
	"PARTITIONED": {{"BY"}},
	"CLUSTERED":   {{"BY"}},
	"SORTED":      {{"BY"}},
	"ZORDER":      {{"BY"}},
	"LEFT": {
		{"OUTER", "JOIN"},
		{"SEMI", "JOIN"},
		{"ANTI", "JOIN"},
		{"JOIN"},
	},
	"RIGHT": {
		{"OUTER", "JOIN"},
		{"SEMI", "JOIN"},
		{"ANTI", "JOIN"},
		{"JOIN"},
	},
	"FULL": {
		{"OUTER", "JOIN"},
		{"JOIN"},
	},
	"INNER": {{"JOIN"}},
	"CROSS": {{"JOIN"}},
	"SEMI":  {{"JOIN"}},
	"ANTI":  {{"JOIN"}},
	"NATURAL": {
		{"LEFT", "OUTER", "JOIN"},
		{"RIGHT", "OUTER", "JOIN"},
		{"FULL", "OUTER", "JOIN"},
		{"LEFT", "JOIN"},
		{"RIGHT", "JOIN"},
		{"FULL", "JOIN"},
		{"INNER", "JOIN"},
		{"JOIN"},
	},
	"LATERAL": {
		{"VIEW", "OUTER"},
		{"VIEW"},
	},
	"UNION":     {{"ALL"}, {"DISTINCT"}},
	"INTERSECT": {{"ALL"}, {"DISTINCT"}},
	"EXCEPT":    {{"ALL"}, {"DISTINCT"}},
	"NOT":       {{"IN"}},
	"IF": {
		{"NOT", "EXISTS"},
		{"EXISTS"},
	},
	"WHEN": {
		{"NOT", "MATCHED", "BY", "SOURCE"},
		{"NOT", "MATCHED", "BY", "TARGET"},
		{"NOT", "MATCHED"},
		{"MATCHED"},
	},
}

// operatorKeywords are keywords that behave like operators or connectors in
// an expression. A grouping parenthesis after one of these keeps its leading
// space (IN (...), AND (...)) where a function-style keyword binds tight
// (COALESCE(...), CAST(...)).
var operatorKeywords = map[string]struct{}{
	"AND":      {},
	"OR":       {},
	"NOT":      {},
	"IN":       {},
	"NOT IN":   {},
	"EXISTS":   {},
	"BETWEEN":  {},
	"LIKE":     {},
	"ILIKE":    {},
	"RLIKE":    {},
	"REGEXP":   {},
	"IS":       {},
	"AS":       {},
	"THEN":     {},
	"ELSE":     {},
	"WHEN":     {},
	"ALL":      {},
	"ANY":      {},
	"SOME":     {},
	"DISTINCT": {},
	"ESCAPE":   {},
	"DIV":      {},
	"INTERVAL": {},
	"OVER":     {},
	"INTO":     {},
	"TO":       {},
	"INSERT":   {},
	"UPDATE":   {},
	"DELETE":   {},
}

// Lookup resolves a word against the keyword set, case-insensitively.
// It returns the canonical upper-cased spelling when the word is a keyword.
func Lookup(word string) (string, bool) {
	if _, ok := keywords[strings.ToLower(word)]; ok {
		return strings.ToUpper(word), true
	}
	return "", false
}

// IsClauseKeyword reports whether the canonical keyword text starts a new
// output line.
func IsClauseKeyword(text string) bool {
	_, ok := clauseKeywords[text]
	return ok
}

// SuffixPhrases returns the compound-keyword suffix phrases for a leading
// keyword, longest first, or nil when the keyword starts no compound.
// The returned slices are shared package data and must not be mutated.
func SuffixPhrases(text string) [][]string {
	return mergePhrases[text]
}

// IsOperatorKeyword reports whether the canonical keyword text acts as an
// operator or connector rather than a function name.
func IsOperatorKeyword(text string) bool {
	_, ok := operatorKeywords[text]
	return ok
}
