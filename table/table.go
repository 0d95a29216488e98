package table

import (
	"fmt"
	"sort"

	"github.com/iancoleman/strcase"
)

// Table is an ordered sequence of rows with a fixed column schema. Values are
// opaque strings exactly as returned by the upstream API - no numeric coercion
// is performed at any point.
type Table struct {
	Columns []string
	Rows    [][]string
}

func NewTable(columns ...string) *Table {
	return &Table{
		Columns: columns,
	}
}

// AppendRow adds a row, which must have exactly one value per column.
func (t *Table) AppendRow(values ...string) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.Columns))
	}
	t.Rows = append(t.Rows, values)
	return nil
}

// AddColumn appends a new column holding the same value in every row.
func (t *Table) AddColumn(name, value string) {
	t.Columns = append(t.Columns, name)
	for i, row := range t.Rows {
		t.Rows[i] = append(row, value)
	}
}

// Concat appends the rows of other. The column schemas must match exactly.
func (t *Table) Concat(other *Table) error {
	if len(t.Columns) != len(other.Columns) {
		return fmt.Errorf("cannot concat: table has %d columns, other has %d", len(t.Columns), len(other.Columns))
	}
	for i, c := range t.Columns {
		if other.Columns[i] != c {
			return fmt.Errorf("cannot concat: column %d is %q, other has %q", i, c, other.Columns[i])
		}
	}
	t.Rows = append(t.Rows, other.Rows...)
	return nil
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// SortByColumns stable-sorts the rows lexicographically by the named columns,
// in order. Ties keep their original relative order.
// NOTE: geoid and year values are fixed-width strings, so lexicographic order
// matches numeric order for them.
func (t *Table) SortByColumns(columns ...string) error {
	indexes := make([]int, len(columns))
	for i, c := range columns {
		idx := t.ColumnIndex(c)
		if idx == -1 {
			return fmt.Errorf("no such column: %s", c)
		}
		indexes[i] = idx
	}

	sort.SliceStable(t.Rows, func(a, b int) bool {
		for _, idx := range indexes {
			if t.Rows[a][idx] != t.Rows[b][idx] {
				return t.Rows[a][idx] < t.Rows[b][idx]
			}
		}
		return false
	})
	return nil
}

// NormalizeHeaders rewrites the column labels as snake_case identifiers, e.g.
// "Total Population" -> "total_population".
func (t *Table) NormalizeHeaders() {
	for i, c := range t.Columns {
		t.Columns[i] = strcase.ToSnake(c)
	}
}

func (t *Table) RowCount() int {
	return len(t.Rows)
}
