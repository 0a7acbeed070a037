package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// StyleSet holds the lipgloss styles used for terminal output.
type StyleSet struct {
	Header        lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	Success       lipgloss.Style
	Warning       lipgloss.Style
	Error         lipgloss.Style
	Info          lipgloss.Style
	FilePath      lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
}

// NewStyleSet builds the styles for a writer. When styled is false the
// color profile is forced to ASCII so Render passes text through without
// escape codes.
func NewStyleSet(w io.Writer, styled bool) StyleSet {
	lr := lipgloss.NewRenderer(w)
	if !styled {
		lr.SetColorProfile(termenv.Ascii)
	}

	return StyleSet{
		Header:        lr.NewStyle().Bold(true).Underline(true),
		Bold:          lr.NewStyle().Bold(true),
		Muted:         lr.NewStyle().Foreground(lipgloss.Color("240")),
		Success:       lr.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:       lr.NewStyle().Foreground(lipgloss.Color("11")),
		Error:         lr.NewStyle().Foreground(lipgloss.Color("9")),
		Info:          lr.NewStyle().Foreground(lipgloss.Color("12")),
		FilePath:      lr.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		StatusSuccess: lr.NewStyle().Foreground(lipgloss.Color("10")),
		StatusFailed:  lr.NewStyle().Foreground(lipgloss.Color("9")),
	}
}
