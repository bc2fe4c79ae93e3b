package pyscrape

import (
	"strings"
)

// Row is a single line of a tabular result.
type Row []string

// Table is the tabular result of a scrape.
type Table struct {
	Header Row
	Rows   []Row
}

// NewTable returns an empty table with the given column names.
func NewTable(header ...string) *Table {
	return &Table{Header: header}
}

// Append adds a row to the table.
func (t *Table) Append(fields ...string) {
	t.Rows = append(t.Rows, fields)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// All returns the header followed by the data rows.
func (t *Table) All() []Row {
	if t == nil {
		return nil
	}
	rows := make([]Row, 0, len(t.Rows)+1)
	if len(t.Header) > 0 {
		rows = append(rows, t.Header)
	}
	return append(rows, t.Rows...)
}

// FormatTable formats a table as plain text, one row per line with
// fields separated by a single space. The header is the first line.
func FormatTable(t *Table) string {
	rows := t.All()
	if len(rows) == 0 {
		return ""
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, strings.Join(row, " "))
	}

	return strings.Join(lines, "\n") + "\n"
}
