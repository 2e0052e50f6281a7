package models

import "fmt"

// Table is a normalized telemetry dataset. Storage is column-major; row
// order is the order of the source file.
type Table struct {
	columns []string
	index   map[string]int
	data    [][]float64
	rows    int
}

// NewTable returns an empty table that will hold exactly rows rows.
func NewTable(rows int) *Table {
	return &Table{
		index: make(map[string]int),
		rows:  rows,
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Columns returns the column names in order. The slice is a copy.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the values of the named column. The returned slice is
// shared with the table and must not be modified.
func (t *Table) Column(name string) ([]float64, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.data[i], true
}

// Value returns a single cell; missing cells and unknown columns both
// yield Missing.
func (t *Table) Value(name string, row int) float64 {
	col, ok := t.Column(name)
	if !ok || row < 0 || row >= len(col) {
		return Missing
	}
	return col[row]
}

// Row returns row i as a column-name → value mapping.
func (t *Table) Row(i int) map[string]float64 {
	m := make(map[string]float64, len(t.columns))
	for c, name := range t.columns {
		m[name] = t.data[c][i]
	}
	return m
}

// AppendColumn adds a column at the end. Existing columns are never
// replaced.
func (t *Table) AppendColumn(name string, values []float64) error {
	if _, dup := t.index[name]; dup {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(values) != t.rows {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	t.data = append(t.data, values)
	return nil
}

// MissingCount returns how many cells of the named column are missing.
func (t *Table) MissingCount(name string) int {
	col, ok := t.Column(name)
	if !ok {
		return 0
	}
	n := 0
	for _, v := range col {
		if IsMissing(v) {
			n++
		}
	}
	return n
}

// CSVHeader returns the column names for export.
func (t *Table) CSVHeader() []string { return t.Columns() }

// CSVRow formats row i for export; missing cells become empty strings.
func (t *Table) CSVRow(i int) []string {
	row := make([]string, len(t.columns))
	for c := range t.columns {
		v := t.data[c][i]
		if IsMissing(v) {
			continue
		}
		row[c] = ftoa(v, -1)
	}
	return row
}
