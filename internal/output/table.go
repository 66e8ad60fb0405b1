package output

import (
	"strings"
	"unicode/utf8"
)

// column is the layout of one table column.
type column struct {
	header string
	width  int
	right  bool
	// limit caps the cell width; zero means unlimited.
	limit int
}

// Table is a bordered ASCII table sized to its widest cells.
type Table struct {
	columns []column
	rows    [][]string
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	t := &Table{columns: make([]column, len(headers))}
	for i, h := range headers {
		t.columns[i] = column{header: h, width: displayWidth(h)}
	}
	return t
}

// AlignRight right-aligns the given columns, such as counts and numbers.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		if c >= 0 && c < len(t.columns) {
			t.columns[c].right = true
		}
	}
	return t
}

// Limit caps the width of column col. Longer cells added afterwards are
// truncated with an ellipsis.
func (t *Table) Limit(col, width int) *Table {
	if col >= 0 && col < len(t.columns) {
		t.columns[col].limit = width
	}
	return t
}

// AddRow adds a row. Missing cells are blank, extra cells are dropped and
// line breaks inside a cell are flattened to spaces.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.columns))
	for i := range row {
		if i >= len(cells) {
			continue
		}
		cell := flatten(cells[i])
		if limit := t.columns[i].limit; limit > 0 {
			cell = TruncateCell(cell, limit)
		}
		row[i] = cell
		if w := displayWidth(cell); w > t.columns[i].width {
			t.columns[i].width = w
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render returns the table with a border, a "=" rule under the header and
// no rules between data rows.
func (t *Table) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.header
	}

	var sb strings.Builder
	sb.WriteString(t.rule('-') + "\n")
	sb.WriteString(t.line(headers) + "\n")
	sb.WriteString(t.rule('=') + "\n")
	for _, row := range t.rows {
		sb.WriteString(t.line(row) + "\n")
	}
	sb.WriteString(t.rule('-') + "\n")
	return sb.String()
}

// rule draws a line like +-----+-----+.
func (t *Table) rule(fill rune) string {
	var sb strings.Builder
	sb.WriteByte('+')
	for _, c := range t.columns {
		sb.WriteString(strings.Repeat(string(fill), c.width+2))
		sb.WriteByte('+')
	}
	return sb.String()
}

// line draws a line like | val | val |.
func (t *Table) line(cells []string) string {
	var sb strings.Builder
	sb.WriteByte('|')
	for i, c := range t.columns {
		pad := strings.Repeat(" ", c.width-displayWidth(cells[i]))
		sb.WriteByte(' ')
		if c.right {
			sb.WriteString(pad + cells[i])
		} else {
			sb.WriteString(cells[i] + pad)
		}
		sb.WriteString(" |")
	}
	return sb.String()
}

func flatten(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' }), " ")
}

// displayWidth returns the display width of a string, ignoring ANSI escape codes.
func displayWidth(s string) int {
	return utf8.RuneCountInString(stripANSI(s))
}

// stripANSI removes ANSI escape codes from a string.
func stripANSI(s string) string {
	var result strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// TruncateCell cuts text to maxWidth display cells with an ellipsis. Colored
// text that needs cutting loses its color.
func TruncateCell(text string, maxWidth int) string {
	stripped := stripANSI(text)
	runes := []rune(stripped)
	if len(runes) <= maxWidth {
		return text
	}
	if maxWidth <= 3 {
		return string(runes[:maxWidth])
	}
	return string(runes[:maxWidth-3]) + "..."
}
