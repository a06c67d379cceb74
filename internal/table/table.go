// Package table renders aligned text tables for the terminal.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Alignment specifies how content should be aligned within a column.
type Alignment int

const (
	// AlignLeft aligns content to the left.
	AlignLeft Alignment = iota
	// AlignRight aligns content to the right.
	AlignRight
)

// Column represents a table column with its configuration.
type Column struct {
	Header string
	Align  Alignment
}

// Table represents a table with columns and rows.
type Table struct {
	columns []Column
	rows    [][]string
	widths  []int // display width of each column
}

// New creates a new table with the specified columns.
func New(columns ...Column) *Table {
	t := &Table{
		columns: columns,
		widths:  make([]int, len(columns)),
	}
	for i, col := range columns {
		t.widths[i] = lipgloss.Width(col.Header)
	}
	return t
}

// AddRow adds a row of values to the table. Missing values are blank and
// extra values are dropped.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.columns))
	copy(row, values)

	for i, val := range row {
		if w := lipgloss.Width(val); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

// RowCount returns the number of rows in the table.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// pad fills value with spaces up to width according to align.
func pad(value string, width int, align Alignment) string {
	fill := width - lipgloss.Width(value)
	if fill <= 0 {
		return value
	}
	if align == AlignRight {
		return strings.Repeat(" ", fill) + value
	}
	return value + strings.Repeat(" ", fill)
}

func (t *Table) line(values []string) string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = pad(values[i], t.widths[i], col.Align)
	}
	return strings.TrimRight(strings.Join(parts, " │ "), " ")
}

// Render returns the complete table. The header is bold when r supports it;
// a nil renderer leaves it plain.
func (t *Table) Render(r *lipgloss.Renderer) string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Header
	}

	header := t.line(headers)
	if r != nil {
		header = r.NewStyle().Bold(true).Render(header)
	}

	seps := make([]string, len(t.widths))
	for i, w := range t.widths {
		seps[i] = strings.Repeat("─", w)
	}

	lines := []string{header, strings.Join(seps, "─┼─")}
	for _, row := range t.rows {
		lines = append(lines, t.line(row))
	}
	return strings.Join(lines, "\n")
}
