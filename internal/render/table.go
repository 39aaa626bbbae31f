package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Align is the horizontal alignment of a table column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table renders an aligned table with a header separator line. Widths are
// measured with lipgloss so styled cells line up. align may be shorter
// than headers; missing entries align left.
func (s Styles) Table(headers []string, align []Align, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	alignOf := func(i int) Align {
		if i < len(align) {
			return align[i]
		}
		return AlignLeft
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			if alignOf(i) == AlignRight {
				b.WriteString(strings.Repeat(" ", pad))
				pad = 0
			}
			b.WriteString(style(cell))
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(c string) string { return s.Header.Render(c) })
	for i, w := range widths {
		b.WriteString(s.Dim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row, func(c string) string { return c })
	}
	return b.String()
}

// Section renders a bold heading followed by an underline.
func (s Styles) Section(text string) string {
	line := strings.Repeat("─", lipgloss.Width(text))
	return s.Title.Render(text) + "\n" + s.Dim.Render(line) + "\n"
}

// Meter renders a proportional bar of at most width cells.
func (s Styles) Meter(value, peak float64, width int) string {
	if peak <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	n := int(value / peak * float64(width))
	if n == 0 {
		n = 1
	}
	if n > width {
		n = width
	}
	return s.Bar.Render(strings.Repeat("█", n))
}
