// Package table provides the untyped, ordered row/column table that raw
// imports are parsed into before column mapping.
package table

import (
	"fmt"
	"strings"
)

// Table is an ordered set of named columns holding string cells.
// An empty cell is the null marker.
type Table struct {
	columns []string
	rows    [][]string
}

// New creates an empty table with the given column names.
func New(columns ...string) *Table {
	return &Table{
		columns: append([]string{}, columns...),
		rows:    make([][]string, 0),
	}
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string{}, t.columns...)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Index returns the position of the first column with the given name, or -1.
func (t *Table) Index(name string) int {
	for i, col := range t.columns {
		if col == name {
			return i
		}
	}
	return -1
}

// IndexFold is like Index but compares trimmed names case-insensitively.
func (t *Table) IndexFold(name string) int {
	name = strings.TrimSpace(name)
	for i, col := range t.columns {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i
		}
	}
	return -1
}

// Has reports whether a column with the given name exists.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// AddRow appends a row. Short rows are padded with empty cells; extra cells
// are an error.
func (t *Table) AddRow(cells ...string) error {
	if len(cells) > len(t.columns) {
		return fmt.Errorf("expected %d fields, saw %d", len(t.columns), len(cells))
	}
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return nil
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []string {
	return append([]string{}, t.rows[i]...)
}

// Cell returns the value at row i of the named column, or "" when the
// column does not exist.
func (t *Table) Cell(i int, column string) string {
	idx := t.Index(column)
	if idx < 0 || idx >= len(t.rows[i]) {
		return ""
	}
	return t.rows[i][idx]
}

// Column returns a copy of the values of the named column.
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]string, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[idx]
	}
	return values, true
}

// Records returns the header followed by every row, suitable for csv.Writer.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.rows)+1)
	records = append(records, t.Columns())
	for _, row := range t.rows {
		records = append(records, append([]string{}, row...))
	}
	return records
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		columns: t.Columns(),
		rows:    make([][]string, len(t.rows)),
	}
	for i, row := range t.rows {
		c.rows[i] = append([]string{}, row...)
	}
	return c
}

// Select builds a new table from source column positions. Each output
// column takes its name from names[i] and its cells from sources[i]; a
// negative source yields a column of empty cells.
func (t *Table) Select(names []string, sources []int) (*Table, error) {
	if len(names) != len(sources) {
		return nil, fmt.Errorf("select: %d names for %d sources", len(names), len(sources))
	}
	out := New(names...)
	for _, src := range sources {
		if src >= len(t.columns) {
			return nil, fmt.Errorf("select: column index %d out of range", src)
		}
	}
	for _, row := range t.rows {
		cells := make([]string, len(sources))
		for i, src := range sources {
			if src >= 0 {
				cells[i] = row[src]
			}
		}
		out.rows = append(out.rows, cells)
	}
	return out, nil
}
