// Package format re-formats Spark SQL into a canonical layout: one clause
// per line, indented select lists, normalized keyword casing and comma
// placement. It works on a flat token stream with no syntax tree, so it
// accepts any input, and it never alters the content of strings, comments,
// or identifiers.
package format

import (
	"github.com/sparkfmt/sparkfmt/pkg/lexer"
	"github.com/sparkfmt/sparkfmt/pkg/token"
)

// Format returns sql in canonical layout. It never fails: unrecognized or
// malformed input passes through token by token under the same spacing
// rules. Unset opts fields fall back to DefaultOptions.
func Format(sql string, opts Options) string {
	opts = opts.withDefaults()
	tokens := MergeKeywords(lexer.Tokenize(sql))
	return render(tokens, opts)
}

// IsFormatted reports whether sql is already in canonical form under opts.
func IsFormatted(sql string, opts Options) bool {
	return Format(sql, opts) == sql
}

// Tokens exposes the merged token stream Format renders, for tools that
// inspect structure without formatting.
func Tokens(sql string) []token.Token {
	return MergeKeywords(lexer.Tokenize(sql))
}
