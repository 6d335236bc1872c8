// Package output renders command results in text, markdown and JSON
// modes over a shared lipgloss style set.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Mode selects how command output is rendered.
type Mode string

const (
	// ModeAuto picks text on a terminal and markdown otherwise.
	ModeAuto     Mode = ""
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in the selected mode. Styled helpers
// degrade to plain text in markdown mode and on non-terminal writers.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer builds a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY pins the terminal state explicitly. Tests use it
// to exercise both sides of mode detection.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: newStyles(out, isTTY),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// EffectiveMode resolves ModeAuto against the terminal state.
func (r *Renderer) EffectiveMode() Mode {
	switch r.mode {
	case ModeText, ModeMarkdown, ModeJSON:
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether the output writer is a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the output writer for callers that stream directly,
// such as table renderers and formatted source.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the error writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the style set bound to the output writer.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to the output writer.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted output to the output writer.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Header prints a section heading: styled in text mode, '#' prefixed
// otherwise.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeText {
		style := r.styles.Header2
		if level <= 1 {
			style = r.styles.Header1
		}
		r.Println(style.Render(text))
		return
	}
	r.Println(FormatHeader(level, text))
}

// FormatHeader renders a markdown heading of the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// Success prints a confirmation line.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeText {
		r.Println(r.styles.Success.Render("✓ " + msg))
		return
	}
	r.Println(msg)
}

// Warning prints a warning line on the error writer.
func (r *Renderer) Warning(msg string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("! "+msg))
		return
	}
	_, _ = fmt.Fprintln(r.errOut, msg)
}

// Muted prints a de-emphasized line.
func (r *Renderer) Muted(msg string) {
	if r.EffectiveMode() == ModeText {
		r.Println(r.styles.Muted.Render(msg))
		return
	}
	r.Println(msg)
}

// StatusLine prints a name with a status marker and an optional detail
// column. Recognized statuses are "success" and "failed"; anything
// else renders neutrally.
func (r *Renderer) StatusLine(name, status, detail string) {
	if r.EffectiveMode() == ModeText {
		marker, style := "-", r.styles.Muted
		switch status {
		case "success":
			marker, style = "✓", r.styles.Success
		case "failed":
			marker, style = "✗", r.styles.Error
		}
		line := fmt.Sprintf("  %s %s", style.Render(marker), name)
		if detail != "" {
			line += "  " + r.styles.Muted.Render(detail)
		}
		r.Println(line)
		return
	}
	line := "- " + name
	if status != "" {
		line += " (" + status + ")"
	}
	if detail != "" {
		line += ": " + detail
	}
	r.Println(line)
}
