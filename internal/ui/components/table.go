package components

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/BTECHK/sql-coach/internal/engine"
)

// ResultTable renders a query result as a bordered text table with a
// trailing row count. maxRows <= 0 renders everything; otherwise the
// output is truncated with an ellipsis row.
func ResultTable(res engine.Result, maxRows int) string {
	if res.RowCount() == 0 {
		return "(0 rows)"
	}

	var b strings.Builder

	t := table.NewWriter()
	t.SetOutputMirror(&b)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(res.Columns))
	for i, col := range res.Columns {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	rows := res.Rows
	truncated := false
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
		truncated = true
	}

	for _, r := range rows {
		row := make(table.Row, len(res.Columns))
		for i := range res.Columns {
			var v any
			if i < len(r) {
				v = r[i]
			}
			row[i] = FormatValue(v)
		}
		t.AppendRow(row)
	}
	if truncated {
		ellipsis := make(table.Row, len(res.Columns))
		for i := range ellipsis {
			ellipsis[i] = "…"
		}
		t.AppendRow(ellipsis)
	}

	t.Render()
	fmt.Fprintf(&b, "(%d rows)\n", res.RowCount())
	return b.String()
}

// FormatValue renders one cell. NULLs print as NULL.
func FormatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
