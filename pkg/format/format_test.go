package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_BasicSelect(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "multi column select breaks items",
			input: "select a, b, c from my_table where x = 1",
			expected: `SELECT
  a,
  b,
  c
FROM my_table
WHERE x = 1
`,
		},
		{
			name:     "single column stays inline",
			input:    "select a from t",
			expected: "SELECT a\nFROM t\n",
		},
		{
			name:     "select star",
			input:    "select * from t",
			expected: "SELECT *\nFROM t\n",
		},
		{
			name:     "function call stays inline",
			input:    "select coalesce(a, b, c) from t",
			expected: "SELECT COALESCE(a, b, c)\nFROM t\n",
		},
		{
			name:  "distinct stays on the select line",
			input: "select distinct a, b from t",
			expected: `SELECT DISTINCT
  a,
  b
FROM t
`,
		},
		{
			name:  "collapses original whitespace",
			input: "select   id,\n\n   sum(val)   from   t",
			expected: `SELECT
  id,
  SUM(val)
FROM t
`,
		},
		{
			name:     "where predicates stay inline",
			input:    "select a from t where x = 1 and y != 2 or z is null",
			expected: "SELECT a\nFROM t\nWHERE x = 1 AND y != 2 OR z IS NULL\n",
		},
		{
			name:     "in list stays inline with a spaced paren",
			input:    "select a from t where x in (1, 2, 3)",
			expected: "SELECT a\nFROM t\nWHERE x IN (1, 2, 3)\n",
		},
		{
			name:     "limit and offset get their own lines",
			input:    "select a from t limit 10 offset 5",
			expected: "SELECT a\nFROM t\nLIMIT 10\nOFFSET 5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.input, Options{}))
		})
	}
}

func TestFormat_Joins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "join with on condition",
			input: "select * from a join b on a.id = b.id",
			expected: `SELECT *
FROM a
JOIN b
  ON a.id = b.id
`,
		},
		{
			name:  "compound join keywords merge",
			input: "select * from a left outer join b on a.id = b.id",
			expected: `SELECT *
FROM a
LEFT OUTER JOIN b
  ON a.id = b.id
`,
		},
		{
			name:  "join keywords merge across line breaks",
			input: "select * from a left\nouter\njoin b on a.id = b.id",
			expected: `SELECT *
FROM a
LEFT OUTER JOIN b
  ON a.id = b.id
`,
		},
		{
			name:  "join using",
			input: "select * from a join b using (id)",
			expected: `SELECT *
FROM a
JOIN b
USING (id)
`,
		},
		{
			name:  "multiple joins",
			input: "select * from a join b on a.id = b.id cross join c",
			expected: `SELECT *
FROM a
JOIN b
  ON a.id = b.id
CROSS JOIN c
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.input, Options{}))
		})
	}
}

func TestFormat_GroupOrder(t *testing.T) {
	input := "select region, count(*) from sales group by region order by region desc"
	expected := `SELECT
  region,
  COUNT(*)
FROM sales
GROUP BY region
ORDER BY region DESC
`
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_Subquery(t *testing.T) {
	input := "select * from (select a from t) x"
	expected := `SELECT *
FROM (
  SELECT a
  FROM t
) x
`
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_NestedSubquery(t *testing.T) {
	input := "select * from (select a from (select a from base) inner_q) outer_q"
	expected := `SELECT *
FROM (
  SELECT a
  FROM (
    SELECT a
    FROM base
  ) inner_q
) outer_q
`
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_ExistsSubquery(t *testing.T) {
	input := "select a from t where exists (select 1 from other where other.id = t.id)"
	expected := `SELECT a
FROM t
WHERE EXISTS (
  SELECT 1
  FROM other
  WHERE other.id = t.id
)
`
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_CTE(t *testing.T) {
	input := "with recent as (select id from events where event_date > '2024-01-01') select * from recent"
	expected := `WITH recent AS (
  SELECT id
  FROM events
  WHERE event_date > '2024-01-01'
)
SELECT *
FROM recent
`
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_Union(t *testing.T) {
	input := "select a from t1 union all select a from t2"
	expected := `SELECT a
FROM t1
UNION ALL
SELECT a
FROM t2
`
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_Case(t *testing.T) {
	input := "select case when x = 1 then 'one' when x = 2 then 'two' else 'many' end as label, id from t"
	expected := `SELECT
  CASE
    WHEN x = 1 THEN 'one'
    WHEN x = 2 THEN 'two'
    ELSE 'many'
  END AS label,
  id
FROM t
`
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_NestedCase(t *testing.T) {
	input := "select case when a then case when b then 1 else 2 end else 3 end from t"
	expected := `SELECT
  CASE
    WHEN a THEN
    CASE
      WHEN b THEN 1
      ELSE 2
    END
    ELSE 3
  END
FROM t
`
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_WindowFunction(t *testing.T) {
	input := "select id, row_number() over (partition by region order by sales desc) as rn from t"
	expected := `SELECT
  id,
  ROW_NUMBER() OVER (
    PARTITION BY region
    ORDER BY sales DESC
  ) AS rn
FROM t
`
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_ConcatExpansion(t *testing.T) {
	input := "select concat(first_name, ' ', last_name) as label from people"
	expected := `SELECT CONCAT(
  first_name,
  ' ',
  last_name
) AS label
FROM people
`
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_ShortConcatStaysInline(t *testing.T) {
	// Two arguments are not worth a multiline expansion.
	input := "select concat(a, b) from t"
	expected := "SELECT CONCAT(a, b)\nFROM t\n"
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_CreateTable(t *testing.T) {
	input := "create table events (id bigint, name string) using delta partitioned by (name) tblproperties ('delta.appendOnly' = 'true')"
	expected := `CREATE TABLE events (
  id BIGINT,
  name STRING
)
USING DELTA
PARTITIONED BY (name)
TBLPROPERTIES (
  'delta.appendOnly' = 'true'
)
`
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_CreateTableAsSelect(t *testing.T) {
	// CTAS: the parenthesis after AS holds a subquery, not column definitions.
	input := "create table t2 as select a, b from t1"
	expected := `CREATE TABLE t2 AS
SELECT
  a,
  b
FROM t1
`
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_Merge(t *testing.T) {
	input := "merge into dst using updates u on dst.id = u.id " +
		"when matched then update set dst.v = u.v " +
		"when not matched then insert (id, v) values (u.id, u.v)"
	expected := `MERGE INTO dst
USING updates u
  ON dst.id = u.id
WHEN MATCHED THEN UPDATE
SET dst.v = u.v
WHEN NOT MATCHED THEN INSERT (id, v)
VALUES (u.id, u.v)
`
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_CreateFunction(t *testing.T) {
	input := "create function double_it(x int) returns int comment 'doubles' return x * 2"
	expected := `CREATE FUNCTION double_it(x INT)
RETURNS INT
COMMENT 'doubles'
RETURN x * 2
`
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_RoutineBodyOpaque(t *testing.T) {
	input := "create function f() returns int language python as return 41 + 1; select 1"
	got := Format(input, Options{})

	// The Python body must survive verbatim and never be re-laid-out as SQL.
	assert.Contains(t, got, "return 41 + 1")
	assert.Contains(t, got, "LANGUAGE python AS")
	assert.Contains(t, got, "SELECT 1")
}

func TestFormat_Comments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "leading comment opens the statement",
			input:    "-- top note\nselect a from t",
			expected: "-- top note\nSELECT a\nFROM t\n",
		},
		{
			name:  "trailing comment moves to its own line without a blank",
			input: "select a, -- first\nb from t",
			expected: `SELECT
  a,
  -- first
  b
FROM t
`,
		},
		{
			name:  "comment before a clause gets a blank line",
			input: "select a from t\n-- filter section\nwhere x = 1",
			expected: `SELECT a
FROM t

-- filter section
WHERE x = 1
`,
		},
		{
			name:  "block comment is preserved verbatim",
			input: "select a from t where /* key = value\n   spanning lines */ x = 1",
			expected: `SELECT a
FROM t
WHERE

  /* key = value
   spanning lines */
  x = 1
`,
		},
		{
			name:     "consecutive comments stay adjacent",
			input:    "-- one\n-- two\nselect a from t",
			expected: "-- one\n-- two\nSELECT a\nFROM t\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.input, Options{}))
		})
	}
}

func TestFormat_MultipleStatements(t *testing.T) {
	input := "select 1; select 2;"
	expected := "SELECT 1;\n\nSELECT 2;\n"
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_TemplatesAndParameters(t *testing.T) {
	input := "select ${col}, :run_date from {{ ref('stg_orders') }}"
	expected := `SELECT
  ${col},
  :run_date
FROM {{ ref('stg_orders') }}
`
	assert.Equal(t, expected, Format(input, Options{}))
}

func TestFormat_KeywordCase(t *testing.T) {
	input := "Select a, b From t Where x = 1"

	lower := Format(input, Options{KeywordCase: KeywordCaseLower})
	assert.Equal(t, "select\n  a,\n  b\nfrom t\nwhere x = 1\n", lower)

	preserve := Format(input, Options{KeywordCase: KeywordCasePreserve})
	assert.Equal(t, "Select\n  a,\n  b\nFrom t\nWhere x = 1\n", preserve)
}

func TestFormat_PreserveCompoundSpelling(t *testing.T) {
	got := Format("select a from t Group By a", Options{KeywordCase: KeywordCasePreserve})
	assert.Equal(t, "Select a\nFrom t\nGroup By a\n", got)
}

func TestFormat_LeadingCommas(t *testing.T) {
	input := "select a, b, c from t"
	expected := `SELECT
  a
  , b
  , c
FROM t
`
	assert.Equal(t, expected, Format(input, Options{CommaPosition: CommaLeading}))
}

func TestFormat_IndentSize(t *testing.T) {
	input := "select a, b from t"
	expected := "SELECT\n    a,\n    b\nFROM t\n"
	assert.Equal(t, expected, Format(input, Options{IndentSize: 4}))
}

func TestFormat_ContentPreserved(t *testing.T) {
	inputs := []struct {
		name    string
		sql     string
		literal string
	}{
		{"string spacing", "select 'a   b  c' from t", "'a   b  c'"},
		{"doubled quote escape", "select 'it''s here' from t", "'it''s here'"},
		{"backtick identifier", "select `weird  col` from t", "`weird  col`"},
		{"double quoted identifier", `select "My Col" from t`, `"My Col"`},
		{"comment text", "select a from t -- keep   THIS   spacing", "-- keep   THIS   spacing"},
		{"keyword inside string", "select 'select from where' from t", "'select from where'"},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.sql, Options{})
			assert.Contains(t, got, tt.literal)
		})
	}
}

func TestFormat_NeverFails(t *testing.T) {
	// Malformed and pathological inputs still produce output.
	inputs := []string{
		"",
		"   \n\t  ",
		";;;",
		"select",
		"select ) from t",
		"select ( from t",
		"'unterminated",
		"/* unterminated",
		"select a from t where (((",
		")))) select",
		"🙂 select * from t",
	}

	for _, input := range inputs {
		got := Format(input, Options{})
		require.NotEmpty(t, got, "input %q", input)
		assert.True(t, strings.HasSuffix(got, "\n"), "output must end with a newline")
		assert.False(t, strings.HasSuffix(got, "\n\n"), "output must not end with a blank line")
	}
}

func TestFormat_EmptyInput(t *testing.T) {
	assert.Equal(t, "\n", Format("", Options{}))
	assert.Equal(t, "\n", Format("   \n  ", Options{}))
}

func TestFormat_Idempotent(t *testing.T) {
	inputs := []string{
		"select a, b, c from my_table where x = 1",
		"select coalesce(a, b, c) from t",
		"with recent as (select id from events) select * from recent",
		"select case when x = 1 then 'a' else 'b' end from t",
		"select id, row_number() over (partition by region order by sales desc) as rn from t",
		"create table events (id bigint, name string) using delta",
		"select concat(a, b, c, d) from t",
		"merge into dst using src on dst.id = src.id when matched then update set v = 1",
		"-- note\nselect a, -- inline\nb from t",
		"select 1; select 2;",
	}

	for _, input := range inputs {
		for _, opts := range []Options{
			{},
			{CommaPosition: CommaLeading},
			{KeywordCase: KeywordCaseLower},
			{KeywordCase: KeywordCasePreserve},
			{IndentSize: 4},
		} {
			once := Format(input, opts)
			twice := Format(once, opts)
			assert.Equal(t, once, twice, "formatting must be a fixed point for %q", input)
		}
	}
}

func TestFormat_Deterministic(t *testing.T) {
	input := "select a, b from t where x in (1, 2) order by a"
	first := Format(input, Options{})
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Format(input, Options{}))
	}
}

func TestIsFormatted(t *testing.T) {
	messy := "select   a,b from t"
	clean := Format(messy, Options{})

	assert.False(t, IsFormatted(messy, Options{}))
	assert.True(t, IsFormatted(clean, Options{}))
}
