package display

import (
	"strings"
	"unicode/utf8"
)

// RowStyle selects how a table row is drawn.
type RowStyle int

const (
	Plain RowStyle = iota
	Highlight
	Faded
)

type row struct {
	cells []string
	style RowStyle
}

// Table renders an aligned text table with optional colour support.
type Table struct {
	headers []string
	rows    []row
	notes   []string
}

// NewTable creates a new table with the given column headers.
func NewTable(headers []string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a plain row.
func (t *Table) AddRow(values []string) {
	t.AddStyledRow(Plain, values)
}

// AddStyledRow appends a row drawn with style.
func (t *Table) AddStyledRow(style RowStyle, values []string) {
	t.rows = append(t.rows, row{cells: values, style: style})
}

// SetHighlightRow marks row idx (0-based) as highlighted. Out of range
// indexes are ignored.
func (t *Table) SetHighlightRow(idx int) {
	if idx >= 0 && idx < len(t.rows) {
		t.rows[idx].style = Highlight
	}
}

// AddNote appends a footnote printed below the table.
func (t *Table) AddNote(note string) {
	t.notes = append(t.notes, note)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render produces the formatted table string with leading indent.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, r := range t.rows {
		for i, cell := range r.cells {
			if n := utf8.RuneCountInString(cell); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("  " + Bold(formatRow(t.headers, widths)) + "\n")

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	sb.WriteString(Dim("  "+strings.Join(sep, "  ")) + "\n")

	for _, r := range t.rows {
		line := formatRow(r.cells, widths)
		switch r.style {
		case Highlight:
			line = Accent(line)
		case Faded:
			line = Dim(line)
		}
		sb.WriteString("  " + line + "\n")
	}

	if len(t.notes) > 0 {
		sb.WriteString("\n")
		for _, n := range t.notes {
			sb.WriteString("  " + Dim(n) + "\n")
		}
	}
	return sb.String()
}

// formatRow pads each cell to its column width. Trailing blanks are kept so
// highlighted rows are drawn as full bars.
func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = cell + strings.Repeat(" ", w-utf8.RuneCountInString(cell))
	}
	return strings.Join(parts, "  ")
}
