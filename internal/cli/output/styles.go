package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles is the lipgloss style set shared by all rendered output.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Hint    lipgloss.Style

	FilePath lipgloss.Style
}

// newStyles builds the style set against out. Non-terminal writers are
// pinned to the Ascii profile, which strips every escape sequence, so
// piped text mode stays clean.
func newStyles(out io.Writer, isTTY bool) *Styles {
	r := lipgloss.NewRenderer(out)
	if !isTTY {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Styles{
		Header1: r.NewStyle().Bold(true).Underline(true),
		Header2: r.NewStyle().Bold(true),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("245")),

		Success: r.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("214")),
		Info:    r.NewStyle().Foreground(lipgloss.Color("39")),
		Hint:    r.NewStyle().Foreground(lipgloss.Color("245")),

		FilePath: r.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
	}
}
