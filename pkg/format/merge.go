package format

import (
	"strings"

	"github.com/sparkfmt/sparkfmt/pkg/token"
)

// MergeKeywords collapses multi-word keyword phrases such as GROUP BY, LEFT
// OUTER JOIN, and WHEN NOT MATCHED into single keyword tokens so the layout
// engine can treat each phrase as one unit. Candidate phrases are matched
// greedily, longest first, and the whitespace between the words is dropped.
// Merged tokens keep the original spellings, joined by single spaces, for
// case-preserving output.
//
// MergeKeywords also fuses inline routine bodies: after LANGUAGE <name> AS,
// a body that is not already a string literal is captured verbatim through
// the next semicolon as a single opaque token, so procedural code is never
// reformatted as SQL.
func MergeKeywords(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for i := 0; i < len(tokens); {
		tok := tokens[i]
		if tok.Kind != token.Keyword {
			out = append(out, tok)
			i++
			continue
		}
		if tok.Is("LANGUAGE") {
			if fused, next, ok := fuseRoutineBody(tokens, i); ok {
				out = append(out, fused...)
				i = next
				continue
			}
		}
		merged, next := mergeCompound(tokens, i)
		out = append(out, merged)
		i = next
	}
	return out
}

// mergeCompound tries to extend the keyword at i into a compound phrase.
// It returns the (possibly merged) token and the index after the last
// consumed input token.
func mergeCompound(tokens []token.Token, i int) (token.Token, int) {
	first := tokens[i]
	for _, phrase := range token.SuffixPhrases(first.Text) {
		parts := []token.Token{first}
		j := i + 1
		matched := true
		for _, word := range phrase {
			for j < len(tokens) && (tokens[j].Kind == token.Whitespace || tokens[j].Kind == token.Newline) {
				j++
			}
			if j >= len(tokens) || tokens[j].Kind != token.Keyword || tokens[j].Text != word {
				matched = false
				break
			}
			parts = append(parts, tokens[j])
			j++
		}
		if !matched {
			continue
		}

		texts := make([]string, len(parts))
		sources := make([]string, len(parts))
		for k, part := range parts {
			texts[k] = part.Text
			sources[k] = part.Source()
		}
		merged := token.Token{Kind: token.Keyword, Text: strings.Join(texts, " ")}
		if source := strings.Join(sources, " "); source != merged.Text {
			merged.Display = source
		}
		return merged, j
	}
	return first, i + 1
}

// fuseRoutineBody matches LANGUAGE <name> AS <body> where the body is not a
// quoted literal, and returns the tokens through AS unchanged followed by
// one opaque token holding the body text through the next semicolon or the
// end of input. Trailing whitespace is trimmed from the body; the semicolon
// is not consumed.
func fuseRoutineBody(tokens []token.Token, i int) ([]token.Token, int, bool) {
	name := nextNonBlank(tokens, i+1)
	if name < 0 || (tokens[name].Kind != token.Identifier && tokens[name].Kind != token.Keyword) {
		return nil, 0, false
	}
	as := nextNonBlank(tokens, name+1)
	if as < 0 || !tokens[as].Is("AS") {
		return nil, 0, false
	}
	body := nextNonBlank(tokens, as+1)
	if body < 0 {
		return nil, 0, false
	}
	switch tokens[body].Kind {
	case token.String, token.DollarQuotedString, token.Semicolon, token.EOF:
		return nil, 0, false
	}

	var sb strings.Builder
	j := body
	for ; j < len(tokens); j++ {
		if tokens[j].Kind == token.Semicolon || tokens[j].Kind == token.EOF {
			break
		}
		sb.WriteString(tokens[j].Source())
	}

	out := append([]token.Token{}, tokens[i:as+1]...)
	out = append(out, token.Token{
		Kind: token.DollarQuotedString,
		Text: strings.TrimRight(sb.String(), " \t\r\n"),
	})
	return out, j, true
}

// nextNonBlank returns the index of the first token at or after i that is
// not whitespace or a newline, or -1 if none remains.
func nextNonBlank(tokens []token.Token, i int) int {
	for ; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case token.Whitespace, token.Newline:
		default:
			return i
		}
	}
	return -1
}
