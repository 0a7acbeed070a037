package format

import (
	"strings"

	"github.com/sparkfmt/sparkfmt/pkg/token"
)

// parenStyle classifies an open parenthesis by what it encloses, which
// determines whether the contents stay inline or break onto indented lines.
type parenStyle int

const (
	// parenInline keeps the contents on the current line: argument lists,
	// IN lists, grouped expressions.
	parenInline parenStyle = iota
	// parenSubquery breaks the contents onto indented lines because they
	// start with a clause keyword.
	parenSubquery
	// parenColumns breaks column definition blocks and table properties one
	// entry per line.
	parenColumns
	// parenExpanded breaks a wide concatenation call one argument per line.
	parenExpanded
)

// parenFrame records the state needed to lay out a parenthesized region and
// restore the surrounding indentation when it closes.
type parenFrame struct {
	style parenStyle
	open  int // indent depth of the line holding the open paren
	saved int // indent level restored when the paren closes
}

// renderer walks the merged token stream once, re-emitting every meaningful
// token under the layout rules. It keeps no syntax tree; all decisions come
// from the current state and bounded lookahead, so any token sequence
// renders without error.
type renderer struct {
	p    *printer
	opts Options

	tokens []token.Token
	pos    int

	indentLevel    int
	statementStart bool

	parens     []parenFrame
	caseLevels []int // indent levels to restore at each pending END

	ddlHeader         bool // statement began with CREATE, ALTER, or DROP
	expectColumnBlock bool // next open paren is a column definition block
	functionHeader    bool // inside a CREATE FUNCTION header
	afterBlockClose   bool // previous token closed a multiline paren
	selectItemsBreak  bool // break before the first select-list item

	lastSig     token.Token
	lastKeyword string
}

// render produces the canonical layout for a merged token stream.
func render(tokens []token.Token, opts Options) string {
	r := &renderer{
		p:              newPrinter(opts.IndentSize),
		opts:           opts,
		tokens:         tokens,
		statementStart: true,
	}

	for r.pos = 0; r.pos < len(r.tokens); r.pos++ {
		tok := r.tokens[r.pos]
		switch tok.Kind {
		case token.Whitespace, token.Newline, token.EOF:
			continue
		case token.Comment, token.BlockComment:
			r.renderComment(tok)
			r.lastSig = tok
			r.statementStart = false
			continue
		}

		if r.selectItemsBreak && !isSelectModifier(tok) {
			r.p.newline(r.indentLevel + 1)
			r.selectItemsBreak = false
		}

		r.renderToken(tok)

		if tok.Kind == token.Semicolon {
			continue
		}
		if tok.Kind != token.CloseParen {
			r.afterBlockClose = false
		}
		r.statementStart = false
		r.lastSig = tok
		if tok.Kind == token.Keyword {
			r.lastKeyword = tok.Text
		}
	}

	return r.p.String()
}

// isSelectModifier reports whether tok is a DISTINCT or ALL qualifier that
// stays on the SELECT line instead of starting the item list.
func isSelectModifier(tok token.Token) bool {
	return tok.Kind == token.Keyword && (tok.Text == "DISTINCT" || tok.Text == "ALL")
}

func (r *renderer) renderToken(tok token.Token) {
	switch tok.Kind {
	case token.Keyword:
		r.renderKeyword(tok)
	case token.Comma:
		r.renderComma()
	case token.OpenParen:
		r.renderOpenParen()
	case token.CloseParen:
		r.renderCloseParen()
	case token.Semicolon:
		r.renderSemicolon()
	case token.Dot:
		r.p.write(".", false)
	default:
		r.p.write(tok.Text, r.spaceBefore())
	}
}

// spaceBefore reports whether the next token needs a separating space under
// the default adjacency rules.
func (r *renderer) spaceBefore() bool {
	if r.lastSig == (token.Token{}) {
		return false
	}
	switch r.lastSig.Kind {
	case token.OpenParen, token.Dot:
		return false
	}
	return true
}

// keywordText applies the configured keyword casing.
func (r *renderer) keywordText(tok token.Token) string {
	switch r.opts.KeywordCase {
	case KeywordCaseLower:
		return strings.ToLower(tok.Text)
	case KeywordCasePreserve:
		return tok.Source()
	}
	return tok.Text
}

func (r *renderer) renderKeyword(tok token.Token) {
	text := r.keywordText(tok)
	switch {
	case tok.Text == "CASE":
		// CASE always starts its own line; WHEN/ELSE sit one level deeper
		// and END returns to the CASE line's depth.
		r.p.newline(r.indentLevel + 1)
		r.p.write(text, false)
		r.caseLevels = append(r.caseLevels, r.indentLevel)
		r.indentLevel = r.p.lineDepth
		return
	case (tok.Text == "WHEN" || tok.Text == "ELSE") && len(r.caseLevels) > 0:
		r.p.newline(r.indentLevel + 1)
		r.p.write(text, false)
		return
	case tok.Text == "END" && len(r.caseLevels) > 0:
		r.p.newline(r.indentLevel)
		r.p.write(text, false)
		r.indentLevel = r.caseLevels[len(r.caseLevels)-1]
		r.caseLevels = r.caseLevels[:len(r.caseLevels)-1]
		return
	case tok.Text == "COMMENT" && r.functionHeader:
		// COMMENT 'doc' is a header clause of CREATE FUNCTION.
		r.p.newline(r.indentLevel)
		r.p.write(text, false)
		return
	case token.IsClauseKeyword(tok.Text):
		depth := r.indentLevel
		if tok.Text == "ON" {
			depth = r.indentLevel + 1
		}
		r.p.newline(depth)
		r.p.write(text, false)
		if tok.Text == "SELECT" {
			r.armSelectItems()
		}
	default:
		r.p.write(text, r.spaceBefore())
	}
	r.trackDDL(tok.Text)
}

// trackDDL follows the CREATE/ALTER/DROP header keywords that change how a
// later parenthesis or COMMENT keyword is interpreted. CREATE ... AS marks a
// CTAS, whose parenthesis holds a subquery rather than column definitions.
func (r *renderer) trackDDL(text string) {
	switch text {
	case "CREATE", "ALTER", "DROP":
		r.ddlHeader = true
	case "TABLE", "VIEW":
		if r.ddlHeader {
			r.expectColumnBlock = true
		}
	case "FUNCTION":
		if r.ddlHeader {
			r.functionHeader = true
		}
	case "AS":
		if r.ddlHeader {
			r.expectColumnBlock = false
			r.ddlHeader = false
		}
	case "TBLPROPERTIES":
		r.expectColumnBlock = true
	}
}

// armSelectItems looks ahead from a SELECT keyword and schedules a line
// break before the first item when the select list has more than one entry.
// Single-item lists stay on the SELECT line.
func (r *renderer) armSelectItems() {
	commas, sawItem, depth := 0, false, 0
scan:
	for i := r.pos + 1; i < len(r.tokens); i++ {
		tok := r.tokens[i]
		if !tok.Meaningful() {
			continue
		}
		switch tok.Kind {
		case token.OpenParen:
			depth++
			sawItem = true
		case token.CloseParen:
			if depth == 0 {
				break scan
			}
			depth--
		case token.Comma:
			if depth == 0 {
				commas++
			}
		case token.Semicolon, token.EOF:
			break scan
		case token.Keyword:
			if depth == 0 && token.IsClauseKeyword(tok.Text) {
				break scan
			}
			sawItem = true
		default:
			sawItem = true
		}
	}
	r.selectItemsBreak = commas > 0 && sawItem
}

func (r *renderer) renderComma() {
	top := r.topParen()
	if top != nil && top.style == parenInline && !r.afterBlockClose {
		r.p.write(",", false)
		return
	}

	depth := r.indentLevel + 1
	if top != nil && (top.style == parenColumns || top.style == parenExpanded) {
		depth = r.indentLevel
	}
	if r.opts.CommaPosition == CommaLeading {
		r.p.newline(depth)
		r.p.write(",", false)
		return
	}
	r.p.write(",", false)
	r.p.newline(depth)
}

func (r *renderer) renderOpenParen() {
	style := r.classifyParen()
	if style == parenInline {
		r.p.write("(", r.inlineParenSpace())
		r.parens = append(r.parens, parenFrame{style: parenInline})
		return
	}

	space := r.spaceBefore()
	if style == parenExpanded {
		space = false
	}
	r.p.write("(", space)
	r.parens = append(r.parens, parenFrame{
		style: style,
		open:  r.p.lineDepth,
		saved: r.indentLevel,
	})
	r.indentLevel = r.p.lineDepth + 1
	r.p.newline(r.indentLevel)
}

// classifyParen decides the layout style of the parenthesis at the current
// position from the arming flags, one token of lookahead, and the preceding
// significant token.
func (r *renderer) classifyParen() parenStyle {
	if r.expectColumnBlock {
		r.expectColumnBlock = false
		return parenColumns
	}
	if next, ok := r.nextMeaningful(r.pos + 1); ok &&
		next.Kind == token.Keyword && token.IsClauseKeyword(next.Text) {
		return parenSubquery
	}
	if (r.lastSig.Is("CONCAT") || r.lastSig.Is("CONCAT_WS")) && r.topLevelCommas(r.pos) >= 2 {
		return parenExpanded
	}
	return parenInline
}

// inlineParenSpace decides whether an inline open paren keeps a leading
// space. Function-style calls bind tight (COALESCE(, my_udf(); operator
// keywords and clause keywords keep the space (IN (, PARTITIONED BY ().
func (r *renderer) inlineParenSpace() bool {
	switch r.lastSig.Kind {
	case token.Identifier, token.BacktickIdentifier:
		return false
	case token.Keyword:
		return token.IsClauseKeyword(r.lastSig.Text) || token.IsOperatorKeyword(r.lastSig.Text)
	}
	return r.spaceBefore()
}

func (r *renderer) renderCloseParen() {
	if len(r.parens) == 0 {
		// Unbalanced input; emit in place.
		r.p.write(")", false)
		return
	}
	top := r.parens[len(r.parens)-1]
	r.parens = r.parens[:len(r.parens)-1]

	if top.style == parenInline {
		r.p.write(")", false)
		return
	}

	r.p.newline(top.open)
	r.indentLevel = top.saved
	r.p.write(")", false)
	if next := r.topParen(); next != nil && next.style == parenInline {
		r.afterBlockClose = true
	}
}

func (r *renderer) renderSemicolon() {
	r.p.write(";", false)
	r.p.newline(0)
	r.p.blankLine()

	r.indentLevel = 0
	r.parens = r.parens[:0]
	r.caseLevels = r.caseLevels[:0]
	r.ddlHeader = false
	r.expectColumnBlock = false
	r.functionHeader = false
	r.afterBlockClose = false
	r.selectItemsBreak = false
	r.lastSig = token.Token{}
	r.lastKeyword = ""
	r.statementStart = true
}

// renderComment places a comment on its own line, preceded by a blank line
// unless it opens a statement or directly follows a comma, an open paren,
// another comment, or a CASE header.
func (r *renderer) renderComment(tok token.Token) {
	depth := r.commentDepth()
	r.p.newline(depth)
	if !r.suppressBlankBefore() {
		r.p.blankLine()
	}
	r.p.write(tok.Text, false)
	r.p.newline(depth)
}

// commentDepth aligns a comment with the construct it annotates: the clause
// keyword that follows it, the closing paren it precedes, or the item depth
// otherwise.
func (r *renderer) commentDepth() int {
	next, ok := r.nextMeaningful(r.pos + 1)
	if !ok {
		return r.indentLevel
	}
	if next.Kind == token.Keyword && token.IsClauseKeyword(next.Text) {
		return r.indentLevel
	}
	if next.Kind == token.CloseParen {
		if top := r.topParen(); top != nil && top.style != parenInline {
			return top.open
		}
	}
	return r.indentLevel + 1
}

func (r *renderer) suppressBlankBefore() bool {
	if r.p.empty() || r.statementStart {
		return true
	}
	switch r.lastSig.Kind {
	case token.Comma, token.OpenParen, token.Comment, token.BlockComment:
		return true
	}
	return r.lastKeyword == "CASE"
}

func (r *renderer) topParen() *parenFrame {
	if len(r.parens) == 0 {
		return nil
	}
	return &r.parens[len(r.parens)-1]
}

// nextMeaningful returns the first token at or after from that is neither
// whitespace nor a comment, stopping at EOF.
func (r *renderer) nextMeaningful(from int) (token.Token, bool) {
	for i := from; i < len(r.tokens); i++ {
		if r.tokens[i].Kind == token.EOF {
			return token.Token{}, false
		}
		if r.tokens[i].Meaningful() {
			return r.tokens[i], true
		}
	}
	return token.Token{}, false
}

// topLevelCommas counts the commas directly inside the parenthesis opened
// at openIdx, ignoring nested parentheses.
func (r *renderer) topLevelCommas(openIdx int) int {
	depth, commas := 0, 0
	for i := openIdx + 1; i < len(r.tokens); i++ {
		switch r.tokens[i].Kind {
		case token.OpenParen:
			depth++
		case token.CloseParen:
			if depth == 0 {
				return commas
			}
			depth--
		case token.Comma:
			if depth == 0 {
				commas++
			}
		case token.Semicolon, token.EOF:
			return commas
		}
	}
	return commas
}
