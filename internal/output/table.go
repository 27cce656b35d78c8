package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// maxCellWidth caps a single column so one long value cannot push the
// rest of the table off screen.
const maxCellWidth = 60

// StyledTable renders rows of aligned, optionally colored columns.
type StyledTable struct {
	w          io.Writer
	headers    []string
	rows       [][]string
	footer     string
	ShowBorder bool
}

// NewStyledTableWriter creates a table that renders to w.
func NewStyledTableWriter(w io.Writer, headers ...string) *StyledTable {
	return &StyledTable{w: w, headers: headers}
}

// AddRow appends a row. Rows with fewer cells than headers are padded
// with empty columns.
func (t *StyledTable) AddRow(cells ...string) *StyledTable {
	t.rows = append(t.rows, cells)
	return t
}

// WithFooter sets a summary line printed below the rows.
func (t *StyledTable) WithFooter(text string) *StyledTable {
	t.footer = text
	return t
}

// WithBorder toggles a rounded border around the table.
func (t *StyledTable) WithBorder(show bool) *StyledTable {
	t.ShowBorder = show
	return t
}

// RowCount returns the number of data rows added so far.
func (t *StyledTable) RowCount() int {
	return len(t.rows)
}

// Render writes the table. A table with no headers renders nothing.
func (t *StyledTable) Render() {
	if len(t.headers) == 0 {
		return
	}

	color := ColorEnabled(t.w)
	widths := t.columnWidths()

	var lines []string
	lines = append(lines, t.formatRow(t.headers, widths, color, true))
	lines = append(lines, t.separator(widths, color))
	for _, row := range t.rows {
		lines = append(lines, t.formatRow(row, widths, color, false))
	}
	if t.footer != "" {
		footer := t.footer
		if color {
			footer = DimStyle.Render(footer)
		}
		lines = append(lines, footer)
	}

	body := strings.Join(lines, "\n")
	if t.ShowBorder {
		body = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 1).
			Render(body)
	}
	fmt.Fprintln(t.w, body)
}

func (t *StyledTable) columnWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			w := runewidth.StringWidth(cell)
			if w > maxCellWidth {
				w = maxCellWidth
			}
			if w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (t *StyledTable) formatRow(cells []string, widths []int, color, header bool) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = truncate.StringWithTail(cell, uint(widths[i]), "…")
		pad := widths[i] - runewidth.StringWidth(cell)
		if pad > 0 {
			cell += strings.Repeat(" ", pad)
		}
		if color && header {
			cell = TitleStyle.Render(cell)
		}
		parts[i] = cell
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func (t *StyledTable) separator(widths []int, color bool) string {
	total := 0
	for _, w := range widths {
		total += w
	}
	total += 2 * (len(widths) - 1)
	sep := strings.Repeat("─", total)
	if color {
		sep = DimStyle.Render(sep)
	}
	return sep
}
