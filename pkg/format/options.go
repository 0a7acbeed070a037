package format

import "fmt"

// KeywordCase controls how keywords are cased in formatted output.
type KeywordCase string

const (
	// KeywordCaseUpper renders keywords in upper case.
	KeywordCaseUpper KeywordCase = "upper"
	// KeywordCaseLower renders keywords in lower case.
	KeywordCaseLower KeywordCase = "lower"
	// KeywordCasePreserve keeps each keyword's original spelling.
	KeywordCasePreserve KeywordCase = "preserve"
)

// CommaPosition controls where list commas are placed when a list breaks
// across lines.
type CommaPosition string

const (
	// CommaTrailing places the comma at the end of each item line.
	CommaTrailing CommaPosition = "trailing"
	// CommaLeading places the comma at the start of each continuation line.
	CommaLeading CommaPosition = "leading"
)

// Options configures formatting. The zero value of any field falls back to
// the corresponding DefaultOptions value.
type Options struct {
	// IndentSize is the number of spaces per indentation level.
	IndentSize int
	// KeywordCase selects upper, lower, or preserve.
	KeywordCase KeywordCase
	// CommaPosition selects trailing or leading commas.
	CommaPosition CommaPosition
}

// DefaultOptions are the settings used when an Options field is unset.
var DefaultOptions = Options{
	IndentSize:    2,
	KeywordCase:   KeywordCaseUpper,
	CommaPosition: CommaTrailing,
}

// withDefaults fills unset fields from DefaultOptions. Unrecognized values
// also fall back so formatting never fails on bad input.
func (o Options) withDefaults() Options {
	if o.IndentSize <= 0 {
		o.IndentSize = DefaultOptions.IndentSize
	}
	switch o.KeywordCase {
	case KeywordCaseUpper, KeywordCaseLower, KeywordCasePreserve:
	default:
		o.KeywordCase = DefaultOptions.KeywordCase
	}
	switch o.CommaPosition {
	case CommaTrailing, CommaLeading:
	default:
		o.CommaPosition = DefaultOptions.CommaPosition
	}
	return o
}

// ParseKeywordCase validates a keyword case name, for callers that surface
// configuration errors instead of falling back.
func ParseKeywordCase(s string) (KeywordCase, error) {
	switch KeywordCase(s) {
	case KeywordCaseUpper, KeywordCaseLower, KeywordCasePreserve:
		return KeywordCase(s), nil
	}
	return "", fmt.Errorf("invalid keyword case: %q, must be one of: upper, lower, preserve", s)
}

// ParseCommaPosition validates a comma position name, for callers that
// surface configuration errors instead of falling back.
func ParseCommaPosition(s string) (CommaPosition, error) {
	switch CommaPosition(s) {
	case CommaTrailing, CommaLeading:
		return CommaPosition(s), nil
	}
	return "", fmt.Errorf("invalid comma position: %q, must be one of: trailing, leading", s)
}
