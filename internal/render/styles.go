package render

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorRed    = lipgloss.Color("#fb4934")
	colorYellow = lipgloss.Color("#fabd2f")
	colorBlue   = lipgloss.Color("#83a598")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")
)

// Styles is the palette used by a Printer. The zero value renders plain text.
type Styles struct {
	Header lipgloss.Style
	Title  lipgloss.Style
	Dim    lipgloss.Style
	Up     lipgloss.Style
	Down   lipgloss.Style
	Warn   lipgloss.Style
	Bar    lipgloss.Style
}

// ColorStyles returns the terminal palette.
func ColorStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Foreground(colorHeader).Bold(true),
		Title:  lipgloss.NewStyle().Bold(true),
		Dim:    lipgloss.NewStyle().Foreground(colorDim),
		Up:     lipgloss.NewStyle().Foreground(colorGreen),
		Down:   lipgloss.NewStyle().Foreground(colorRed),
		Warn:   lipgloss.NewStyle().Foreground(colorYellow),
		Bar:    lipgloss.NewStyle().Foreground(colorBlue),
	}
}

// PlainStyles returns styles that add no escape sequences.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Header: plain, Title: plain, Dim: plain, Up: plain, Down: plain, Warn: plain, Bar: plain}
}

// IsTerminal reports whether w is a terminal. Anything that is not an
// *os.File, such as a buffer in tests, is not.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
