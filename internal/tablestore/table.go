package tablestore

import (
	"strconv"
	"strings"
	"time"
)

// Table is an immutable, named, rectangular collection of records.
// The column set is data-driven: whatever header the source file
// carried. A table loaded from a missing file has zero rows and no
// columns, and every accessor degrades to the not-present result.
type Table struct {
	name    string
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a Table from a header and row data. Rows shorter
// than the header read as empty cells; longer rows are truncated.
func NewTable(name string, columns []string, rows [][]string) Table {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		index[strings.TrimSpace(col)] = i
	}
	return Table{
		name:    name,
		columns: columns,
		index:   index,
		rows:    rows,
	}
}

func (t Table) Name() string { return t.name }

func (t Table) Len() int { return len(t.rows) }

func (t Table) Empty() bool { return len(t.rows) == 0 }

func (t Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t Table) HasColumns(names ...string) bool {
	for _, name := range names {
		if !t.HasColumn(name) {
			return false
		}
	}
	return true
}

// Row is a cursor over one record. Accessors return a second result
// reporting whether the cell exists and parsed; a missing column or
// an empty cell is not-present, never a panic.
type Row struct {
	table *Table
	idx   int
}

func (t Table) Row(i int) Row {
	return Row{table: &t, idx: i}
}

// Rows iterates without copying; the callback must not retain the Row
// past its invocation.
func (t Table) Rows(fn func(Row)) {
	for i := range t.rows {
		fn(Row{table: &t, idx: i})
	}
}

func (r Row) cell(col string) (string, bool) {
	if r.table == nil {
		return "", false
	}
	pos, ok := r.table.index[col]
	if !ok {
		return "", false
	}
	cells := r.table.rows[r.idx]
	if pos >= len(cells) {
		return "", false
	}
	value := strings.TrimSpace(cells[pos])
	if value == "" {
		return "", false
	}
	return value, true
}

func (r Row) String(col string) (string, bool) {
	return r.cell(col)
}

// StringOr returns the cell value or fallback when absent. Placeholder
// handling is the caller's concern.
func (r Row) StringOr(col, fallback string) string {
	if v, ok := r.cell(col); ok {
		return v
	}
	return fallback
}

func (r Row) Int(col string) (int, bool) {
	raw, ok := r.cell(col)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		// Numeric columns exported through a float dtype carry a
		// trailing ".0"; accept those as ints.
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, false
		}
		return int(f), true
	}
	return v, true
}

func (r Row) Float(col string) (float64, bool) {
	raw, ok := r.cell(col)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (r Row) Bool(col string) (bool, bool) {
	raw, ok := r.cell(col)
	if !ok {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "true", "t", "1", "yes":
		return true, true
	case "false", "f", "0", "no":
		return false, true
	default:
		return false, false
	}
}

// BoolOr reads a boolean flag defaulting absent or unparseable cells.
func (r Row) BoolOr(col string, fallback bool) bool {
	if v, ok := r.Bool(col); ok {
		return v
	}
	return fallback
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "01/02/2006"}

func (r Row) Time(col string) (time.Time, bool) {
	raw, ok := r.cell(col)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Year extracts the year of a date column, the only date-derived
// feature the pipelines use.
func (r Row) Year(col string) (int, bool) {
	ts, ok := r.Time(col)
	if !ok {
		return 0, false
	}
	return ts.Year(), true
}
