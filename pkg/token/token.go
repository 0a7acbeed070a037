// Package token defines the lexical token model for Spark SQL formatting.
//
// Tokens carry the exact source text they cover, so the stream is lossless:
// joining every token's Source() in order reproduces the input byte for byte.
// Keywords additionally carry their canonical upper-cased spelling, which is
// what the formatter keys its tables on.
package token

import "fmt"

// Kind classifies a lexical token.
type Kind int32

const (
	Keyword Kind = iota
	Identifier
	Number
	String
	Operator
	Comma
	OpenParen
	CloseParen
	Semicolon
	Dot
	Whitespace
	Comment
	BlockComment
	Newline
	BacktickIdentifier
	Parameter
	DollarQuotedString
	EOF
)

// kindNames maps kinds to their string representations.
var kindNames = map[Kind]string{
	Keyword:            "KEYWORD",
	Identifier:         "IDENT",
	Number:             "NUMBER",
	String:             "STRING",
	Operator:           "OPERATOR",
	Comma:              "COMMA",
	OpenParen:          "LPAREN",
	CloseParen:         "RPAREN",
	Semicolon:          "SEMICOLON",
	Dot:                "DOT",
	Whitespace:         "WHITESPACE",
	Comment:            "COMMENT",
	BlockComment:       "BLOCK_COMMENT",
	Newline:            "NEWLINE",
	BacktickIdentifier: "BACKTICK_IDENT",
	Parameter:          "PARAMETER",
	DollarQuotedString: "DOLLAR_STRING",
	EOF:                "EOF",
}

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", k)
}

// Token is a single lexical unit.
//
// Text is the canonical text: for keywords the upper-cased spelling, for
// everything else the exact source substring including delimiters (quotes,
// backticks, comment markers). Display holds the original source spelling
// of a keyword when it differs from Text; it is empty for all other kinds.
type Token struct {
	Kind    Kind
	Text    string
	Display string
}

// Source returns the text as it appeared in the input.
func (t Token) Source() string {
	if t.Display != "" {
		return t.Display
	}
	return t.Text
}

// Is reports whether the token is the given canonical keyword.
// The text must already be upper-cased.
func (t Token) Is(keyword string) bool {
	return t.Kind == Keyword && t.Text == keyword
}

// IsClause reports whether the token is a clause keyword, one that always
// begins a new output line.
func (t Token) IsClause() bool {
	return t.Kind == Keyword && IsClauseKeyword(t.Text)
}

// IsComment reports whether the token is a line or block comment.
func (t Token) IsComment() bool {
	return t.Kind == Comment || t.Kind == BlockComment
}

// Meaningful reports whether the token participates in layout decisions.
// Input whitespace and newlines are discarded by the formatter, and comments
// are re-placed rather than anchored, so none of them count.
func (t Token) Meaningful() bool {
	switch t.Kind {
	case Whitespace, Newline, Comment, BlockComment:
		return false
	}
	return true
}
