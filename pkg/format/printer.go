package format

import "strings"

// printer accumulates formatted output with indentation tracking. Line
// breaks are collapsed: asking for a new line while already at the start of
// one only adjusts the pending indent, so emission rules can be layered
// without producing blank lines.
type printer struct {
	out         strings.Builder
	indentSize  int
	atLineStart bool
	pending     int // indent units for the next line
	lineDepth   int // indent units of the line being written
}

func newPrinter(indentSize int) *printer {
	return &printer{indentSize: indentSize, atLineStart: true}
}

// String returns the accumulated output with exactly one trailing newline.
func (p *printer) String() string {
	return strings.TrimSpace(p.out.String()) + "\n"
}

func (p *printer) empty() bool {
	return p.out.Len() == 0
}

// write emits token text. At the start of a line the pending indent is
// materialized first; mid-line a single space is inserted when requested.
func (p *printer) write(s string, spaceBefore bool) {
	if p.atLineStart {
		for i := 0; i < p.pending*p.indentSize; i++ {
			p.out.WriteByte(' ')
		}
		p.lineDepth = p.pending
		p.atLineStart = false
	} else if spaceBefore {
		p.out.WriteByte(' ')
	}
	p.out.WriteString(s)
}

// newline moves to a fresh line indented depth units. At the start of a
// line it only updates the pending indent.
func (p *printer) newline(depth int) {
	if !p.atLineStart && p.out.Len() > 0 {
		p.out.WriteByte('\n')
	}
	p.atLineStart = true
	p.pending = depth
}

// blankLine inserts one empty line. Callers invoke it after newline.
func (p *printer) blankLine() {
	if p.out.Len() == 0 {
		return
	}
	p.out.WriteByte('\n')
}
