// Package table loads and cleans country-keyed CPI tables.
package table

import (
	"strings"
)

// KeyColumn is the source column that becomes the row key.
const KeyColumn = "ISO3"

// dropPrefix marks derived columns removed during cleaning.
const dropPrefix = "rank"

// Table is a cleaned CPI table: one row per country, keyed by ISO3 code.
// Cells keep their raw source text.
type Table struct {
	columns []string
	keys    []string
	rows    [][]string
	index   map[string]int
}

// NormalizeColumn lowercases a column name and replaces spaces with
// underscores. Applying it twice gives the same result as applying it once.
func NormalizeColumn(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// Clean builds a Table from a header and its data records. The ISO3 column
// becomes the row key, the remaining names are normalized and columns
// starting with "rank" are dropped.
func Clean(header []string, records [][]string) (*Table, error) {
	keyIdx := -1
	for i, h := range header {
		if unquote(h) == KeyColumn {
			keyIdx = i
			break
		}
	}
	if keyIdx == -1 {
		return nil, &SchemaError{Column: KeyColumn, Header: header}
	}

	var keep []int
	var columns []string
	for i, h := range header {
		if i == keyIdx {
			continue
		}
		// Only quotes are stripped; surrounding spaces become underscores.
		name := NormalizeColumn(strings.Trim(h, "\""))
		if strings.HasPrefix(name, dropPrefix) {
			continue
		}
		keep = append(keep, i)
		columns = append(columns, name)
	}

	t := &Table{
		columns: columns,
		keys:    make([]string, 0, len(records)),
		rows:    make([][]string, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for _, rec := range records {
		key := unquote(cell(rec, keyIdx))
		row := make([]string, len(keep))
		for j, idx := range keep {
			row[j] = cell(rec, idx)
		}
		// Duplicate keys keep both rows; lookups resolve to the first.
		if _, ok := t.index[key]; !ok {
			t.index[key] = len(t.keys)
		}
		t.keys = append(t.keys, key)
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.keys)
}

// Columns returns the cleaned column names in source order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Keys returns the row keys in source order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// ColumnIndex returns the position of a cleaned column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Row returns a copy of the first row stored under key.
func (t *Table) Row(key string) ([]string, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.RowAt(i), true
}

// RowAt returns a copy of the i-th row.
func (t *Table) RowAt(i int) []string {
	out := make([]string, len(t.rows[i]))
	copy(out, t.rows[i])
	return out
}

// Cell returns the raw value of column for key.
func (t *Table) Cell(key, column string) (string, bool) {
	i, ok := t.index[key]
	if !ok {
		return "", false
	}
	j := t.ColumnIndex(column)
	if j < 0 {
		return "", false
	}
	return t.rows[i][j], true
}

// Head returns a table holding the first n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.keys) {
		n = len(t.keys)
	}
	if n < 0 {
		n = 0
	}
	head := &Table{
		columns: t.columns,
		keys:    t.keys[:n:n],
		rows:    t.rows[:n:n],
		index:   make(map[string]int, n),
	}
	for i, k := range head.keys {
		if _, ok := head.index[k]; !ok {
			head.index[k] = i
		}
	}
	return head
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func unquote(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}
