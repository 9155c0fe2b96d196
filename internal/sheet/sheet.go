// Package sheet holds the generic tabular shape that spreadsheet readers
// produce: a header row and data rows of loosely typed cells.
package sheet

import "strings"

// Row is one data row. Values line up with Table.Headers; short rows are
// padded with nil.
type Row struct {
	Number int // 1-based row number in the source file
	Values []any
}

// Table is a header row plus data rows.
type Table struct {
	Name    string
	Headers []string
	Rows    []Row
	index   map[string]int
}

// New builds a Table from raw records. The first non-empty record is the
// header row; headers are trimmed and fully empty rows are skipped.
func New(name string, records [][]any) *Table {
	t := &Table{Name: name}
	start := -1
	for i, rec := range records {
		if !isEmpty(rec) {
			start = i
			break
		}
	}
	if start < 0 {
		t.buildIndex()
		return t
	}

	t.Headers = make([]string, len(records[start]))
	for i, v := range records[start] {
		t.Headers[i] = strings.TrimSpace(String(v))
	}
	for i := start + 1; i < len(records); i++ {
		if isEmpty(records[i]) {
			continue
		}
		vals := make([]any, len(t.Headers))
		copy(vals, records[i])
		t.Rows = append(t.Rows, Row{Number: i + 1, Values: vals})
	}
	t.buildIndex()
	return t
}

// FromStrings builds a Table from string records, as read from CSV.
func FromStrings(name string, records [][]string) *Table {
	raw := make([][]any, len(records))
	for i, rec := range records {
		raw[i] = make([]any, len(rec))
		for j, v := range rec {
			raw[i][j] = v
		}
	}
	return New(name, raw)
}

func (t *Table) buildIndex() {
	t.index = make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		if h == "" {
			continue
		}
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Value returns the cell of row under header. For repeated headers the
// first column wins.
func (t *Table) Value(row Row, header string) (any, bool) {
	i, ok := t.index[header]
	if !ok || i >= len(row.Values) {
		return nil, false
	}
	return row.Values[i], true
}

func isEmpty(rec []any) bool {
	for _, v := range rec {
		if strings.TrimSpace(String(v)) != "" {
			return false
		}
	}
	return true
}
