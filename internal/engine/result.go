package engine

import (
	"fmt"
	"strings"
)

// Result is a fully materialized query result: column names plus row
// values as the driver returned them (int64, float64, string, nil).
type Result struct {
	Columns []string
	Rows    [][]any
}

// RowCount returns the number of rows.
func (r Result) RowCount() int {
	return len(r.Rows)
}

// Empty reports whether the result holds no rows.
func (r Result) Empty() bool {
	return len(r.Rows) == 0
}

// ColumnIndex returns the index of the named column, matched
// case-insensitively, or -1 if absent.
func (r Result) ColumnIndex(name string) int {
	for i, c := range r.Columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// Summary renders a short "N rows, M columns" description for logs and
// status lines.
func (r Result) Summary() string {
	return fmt.Sprintf("%d rows, %d columns", len(r.Rows), len(r.Columns))
}
