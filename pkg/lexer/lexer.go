// Package lexer scans Spark SQL text into a lossless token stream.
//
// Unlike a parser-oriented lexer it never discards input: whitespace,
// newlines, and comments are tokens too, and every token records the exact
// source substring it covers. Scanning is total; text that matches no rule
// becomes a one-character operator token, so any input tokenizes.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/sparkfmt/sparkfmt/pkg/token"
)

// Lexer tokenizes SQL input.
type Lexer struct {
	input string
	pos   int // current byte offset
}

// New creates a Lexer for the given input.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize returns all tokens for the input, terminated by an EOF token.
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

// peek returns the byte at the given lookahead distance, or 0 past the end.
func (l *Lexer) peek(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() token.Token {
	if l.pos >= len(l.input) {
		return token.Token{Kind: token.EOF}
	}

	switch ch := l.input[l.pos]; {
	case ch == ' ' || ch == '\t':
		return l.readWhitespace()
	case ch == '\r' || ch == '\n':
		return l.readNewline()
	case ch == '-' && l.peek(1) == '-':
		return l.readLineComment()
	case ch == '/' && l.peek(1) == '*':
		return l.readBlockComment()
	case ch == '\'':
		return l.readString()
	case ch == '"':
		return l.readQuoted('"', token.Identifier)
	case ch == '`':
		return l.readQuoted('`', token.BacktickIdentifier)
	case isDigit(ch):
		return l.readNumber()
	case ch == '.' && isDigit(l.peek(1)):
		return l.readNumber()
	case ch == '(':
		return l.emit(token.OpenParen, 1)
	case ch == ')':
		return l.emit(token.CloseParen, 1)
	case ch == ',':
		return l.emit(token.Comma, 1)
	case ch == ';':
		return l.emit(token.Semicolon, 1)
	case ch == '.':
		return l.emit(token.Dot, 1)
	case ch == '$' && l.peek(1) == '$':
		return l.readDollarQuoted()
	case ch == '$' && l.peek(1) == '{':
		return l.readBraceParameter()
	case ch == '{' && l.peek(1) == '{':
		return l.readTemplateParameter()
	case ch == ':' || ch == '@':
		return l.readNamedParameter()
	case isWordStart(ch):
		return l.readWord()
	default:
		return l.readOperator()
	}
}

// emit produces a token covering the next n bytes.
func (l *Lexer) emit(kind token.Kind, n int) token.Token {
	text := l.input[l.pos : l.pos+n]
	l.pos += n
	return token.Token{Kind: kind, Text: text}
}

// readWhitespace consumes a run of spaces and tabs.
func (l *Lexer) readWhitespace() token.Token {
	start := l.pos
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t') {
		l.pos++
	}
	return token.Token{Kind: token.Whitespace, Text: l.input[start:l.pos]}
}

// readNewline consumes one line break; a CRLF pair is a single token.
func (l *Lexer) readNewline() token.Token {
	if l.input[l.pos] == '\r' && l.peek(1) == '\n' {
		return l.emit(token.Newline, 2)
	}
	return l.emit(token.Newline, 1)
}

// readLineComment consumes "--" through the end of the line, newline excluded.
func (l *Lexer) readLineComment() token.Token {
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '\n' && l.input[l.pos] != '\r' {
		l.pos++
	}
	return token.Token{Kind: token.Comment, Text: l.input[start:l.pos]}
}

// readBlockComment consumes "/* ... */". Block comments do not nest; an
// unterminated comment runs to the end of input.
func (l *Lexer) readBlockComment() token.Token {
	start := l.pos
	l.pos += 2
	for l.pos < len(l.input) {
		if l.input[l.pos] == '*' && l.peek(1) == '/' {
			l.pos += 2
			break
		}
		l.pos++
	}
	return token.Token{Kind: token.BlockComment, Text: l.input[start:l.pos]}
}

// readString consumes a single-quoted string. A doubled '' is an escape and
// stays in the text as two characters; an unterminated string runs to the
// end of input.
func (l *Lexer) readString() token.Token {
	start := l.pos
	l.pos++
	for l.pos < len(l.input) {
		if l.input[l.pos] == '\'' {
			if l.peek(1) == '\'' {
				l.pos += 2
				continue
			}
			l.pos++
			break
		}
		l.pos++
	}
	return token.Token{Kind: token.String, Text: l.input[start:l.pos]}
}

// readQuoted consumes a delimiter-quoted identifier, delimiters retained.
// A doubled delimiter is an escape; unterminated runs to the end of input.
func (l *Lexer) readQuoted(quote byte, kind token.Kind) token.Token {
	start := l.pos
	l.pos++
	for l.pos < len(l.input) {
		if l.input[l.pos] == quote {
			if l.peek(1) == quote {
				l.pos += 2
				continue
			}
			l.pos++
			break
		}
		l.pos++
	}
	return token.Token{Kind: kind, Text: l.input[start:l.pos]}
}

// readNumber consumes digits with at most one embedded run of dots and an
// optional scientific-notation suffix. The exponent marker is only consumed
// when digits follow it, so "1easter" lexes as a number and a word.
func (l *Lexer) readNumber() token.Token {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}

	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		dots := l.pos
		for dots < len(l.input) && l.input[dots] == '.' {
			dots++
		}
		if dots < len(l.input) && isDigit(l.input[dots]) {
			l.pos = dots
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.pos++
			}
		}
	}

	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		exp := l.pos + 1
		if exp < len(l.input) && (l.input[exp] == '+' || l.input[exp] == '-') {
			exp++
		}
		if exp < len(l.input) && isDigit(l.input[exp]) {
			l.pos = exp
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.pos++
			}
		}
	}

	return token.Token{Kind: token.Number, Text: l.input[start:l.pos]}
}

// readDollarQuoted consumes a $$ ... $$ string, delimiters included.
// Unterminated runs to the end of input.
func (l *Lexer) readDollarQuoted() token.Token {
	start := l.pos
	l.pos += 2
	for l.pos < len(l.input) {
		if l.input[l.pos] == '$' && l.peek(1) == '$' {
			l.pos += 2
			break
		}
		l.pos++
	}
	return token.Token{Kind: token.DollarQuotedString, Text: l.input[start:l.pos]}
}

// readBraceParameter consumes a ${ ... } substitution through the first
// closing brace; unterminated runs to the end of input.
func (l *Lexer) readBraceParameter() token.Token {
	start := l.pos
	l.pos += 2
	for l.pos < len(l.input) {
		if l.input[l.pos] == '}' {
			l.pos++
			break
		}
		l.pos++
	}
	return token.Token{Kind: token.Parameter, Text: l.input[start:l.pos]}
}

// readTemplateParameter consumes a {{ ... }} template expression through the
// matching close, tracking nested pairs and skipping quoted strings so
// braces inside literals are not miscounted.
func (l *Lexer) readTemplateParameter() token.Token {
	start := l.pos
	l.pos += 2
	depth := 1
	for l.pos < len(l.input) && depth > 0 {
		switch l.input[l.pos] {
		case '\'', '"':
			l.skipQuotedInTemplate(l.input[l.pos])
		case '{':
			if l.peek(1) == '{' {
				depth++
				l.pos++
			}
			l.pos++
		case '}':
			if l.peek(1) == '}' {
				depth--
				l.pos += 2
			} else {
				l.pos++
			}
		default:
			l.pos++
		}
	}
	return token.Token{Kind: token.Parameter, Text: l.input[start:l.pos]}
}

// skipQuotedInTemplate advances past a quoted string inside a template
// expression.
func (l *Lexer) skipQuotedInTemplate(quote byte) {
	l.pos++
	for l.pos < len(l.input) {
		if l.input[l.pos] == quote {
			l.pos++
			return
		}
		if l.input[l.pos] == '\\' && l.pos+1 < len(l.input) {
			l.pos++
		}
		l.pos++
	}
}

// readNamedParameter consumes a : or @ marker and any following word
// characters. A bare marker is a one-character parameter token.
func (l *Lexer) readNamedParameter() token.Token {
	start := l.pos
	l.pos++
	for l.pos < len(l.input) && isWordPart(l.input[l.pos]) {
		l.pos++
	}
	return token.Token{Kind: token.Parameter, Text: l.input[start:l.pos]}
}

// readWord consumes an identifier or keyword. Keywords are recognized
// case-insensitively; the token keeps the canonical upper-cased spelling in
// Text and the original spelling in Display when the two differ.
func (l *Lexer) readWord() token.Token {
	start := l.pos
	for l.pos < len(l.input) && isWordPart(l.input[l.pos]) {
		l.pos++
	}
	word := l.input[start:l.pos]

	if canonical, ok := token.Lookup(word); ok {
		tok := token.Token{Kind: token.Keyword, Text: canonical}
		if canonical != word {
			tok.Display = word
		}
		return tok
	}
	return token.Token{Kind: token.Identifier, Text: word}
}

// readOperator consumes one operator, preferring the two-character forms
// over their one-character prefixes. Anything unrecognized is consumed as a
// one-rune operator so the scan always advances.
func (l *Lexer) readOperator() token.Token {
	if l.pos+1 < len(l.input) {
		switch l.input[l.pos : l.pos+2] {
		case "!=", "<>", ">=", "<=", "||", "->":
			return l.emit(token.Operator, 2)
		}
	}
	if strings.IndexByte("+-*/%=<>|&^~!", l.input[l.pos]) >= 0 {
		return l.emit(token.Operator, 1)
	}
	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	return l.emit(token.Operator, size)
}

// isDigit reports whether ch is an ASCII digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isWordStart reports whether ch can begin an identifier or keyword.
func isWordStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isWordPart reports whether ch can continue an identifier or keyword.
func isWordPart(ch byte) bool {
	return isWordStart(ch) || isDigit(ch)
}
