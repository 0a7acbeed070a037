// Package output renders CLI output as styled text, markdown, or JSON.
//
// The renderer picks an effective mode from the configured mode and the
// terminal: auto resolves to text on a TTY and markdown when piped. Styles
// degrade to plain text whenever the effective mode is not text on a TTY,
// so piped and JSON output never contains ANSI escape codes.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// OutputMode selects how CLI output is rendered.
type OutputMode string

const (
	// ModeAuto detects the mode: text on a TTY, markdown otherwise.
	ModeAuto OutputMode = "auto"
	// ModeText renders styled terminal output.
	ModeText OutputMode = "text"
	// ModeMarkdown renders plain markdown suitable for piping.
	ModeMarkdown OutputMode = "markdown"
	// ModeJSON renders machine-readable JSON.
	ModeJSON OutputMode = "json"
)

// Mode parses a mode name, falling back to ModeAuto for unknown values.
func Mode(s string) OutputMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles StyleSet
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, detectTTY(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
// Tests use this to simulate terminal and piped environments.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	r := &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
	}
	styled := isTTY && r.EffectiveMode() == ModeText
	r.styles = NewStyleSet(out, styled)
	return r
}

func detectTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// EffectiveMode resolves ModeAuto against the terminal state.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Writer returns the underlying output writer, for callers that stream
// their own output (tables, encoders).
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the underlying error writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Styles returns the style set for the current mode.
func (r *Renderer) Styles() *StyleSet {
	return &r.styles
}

// Println writes a line to the output writer.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Printf writes formatted output to the output writer.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// JSON writes v as indented JSON to the output writer.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Header writes a section header. JSON mode suppresses it; commands emit
// structured output through JSON instead.
func (r *Renderer) Header(level int, text string) {
	switch r.EffectiveMode() {
	case ModeJSON:
	case ModeMarkdown:
		_, _ = fmt.Fprintf(r.out, "%s\n\n", FormatHeader(level, text))
	default:
		_, _ = fmt.Fprintln(r.out, r.styles.Header.Render(text))
	}
}

// StatusLine writes a per-item status line, e.g. a processed file.
// Recognized statuses are "success" and "failed"; anything else renders
// as a neutral bullet.
func (r *Renderer) StatusLine(name, status, detail string) {
	switch r.EffectiveMode() {
	case ModeJSON:
		return
	case ModeMarkdown:
		if detail != "" {
			_, _ = fmt.Fprintf(r.out, "- %s (%s)\n", name, detail)
		} else {
			_, _ = fmt.Fprintf(r.out, "- %s\n", name)
		}
		return
	}

	var marker string
	switch status {
	case "success":
		marker = r.styles.StatusSuccess.Render("✓")
	case "failed":
		marker = r.styles.StatusFailed.Render("✗")
	default:
		marker = "-"
	}
	if detail != "" {
		_, _ = fmt.Fprintf(r.out, "  %s %s %s\n", marker, name, r.styles.Muted.Render(detail))
	} else {
		_, _ = fmt.Fprintf(r.out, "  %s %s\n", marker, name)
	}
}

// Success writes a success message.
func (r *Renderer) Success(msg string) {
	switch r.EffectiveMode() {
	case ModeJSON:
	case ModeMarkdown:
		_, _ = fmt.Fprintln(r.out, msg)
	default:
		_, _ = fmt.Fprintf(r.out, "%s %s\n", r.styles.StatusSuccess.Render("✓"), msg)
	}
}

// Warning writes a warning message to the error writer.
func (r *Renderer) Warning(msg string) {
	if r.EffectiveMode() == ModeJSON {
		return
	}
	_, _ = fmt.Fprintf(r.errOut, "%s %s\n", r.styles.Warning.Render("warning:"), msg)
}

// Error writes an error message to the error writer.
func (r *Renderer) Error(msg string) {
	if r.EffectiveMode() == ModeJSON {
		return
	}
	_, _ = fmt.Fprintf(r.errOut, "%s %s\n", r.styles.Error.Render("error:"), msg)
}

// Muted writes a de-emphasized line.
func (r *Renderer) Muted(msg string) {
	if r.EffectiveMode() == ModeJSON {
		return
	}
	_, _ = fmt.Fprintln(r.out, r.styles.Muted.Render(msg))
}

// FormatHeader formats a markdown header at the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue formats a markdown key-value list item.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s**: %s", key, value)
}
