package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/BTECHK/sql-coach/internal/curriculum"
)

// Numeric comparison tolerances. SQLite mixes INTEGER and REAL across
// equivalent expressions, so exact equality would punish correct
// queries.
const (
	absTolerance = 1e-6
	relTolerance = 1e-9
)

// Comparison is the verdict on a submitted result set.
type Comparison struct {
	Correct bool
	// Reason explains the first detected mismatch. Empty on a match.
	Reason string
	// Note carries non-failing observations, such as differing column
	// aliases.
	Note string
}

// Compare checks a learner result against the lesson's reference
// result. Column names are informative only; values, arity and row
// count decide. Row order matters only for lessons marked Ordered.
// A lesson predicate, when present and supported, replaces the order
// check with a shape constraint on the learner's own result.
func Compare(expected, actual Result, lesson curriculum.Lesson) Comparison {
	if len(actual.Columns) != len(expected.Columns) {
		return Comparison{Reason: fmt.Sprintf(
			"expected %d columns, got %d", len(expected.Columns), len(actual.Columns))}
	}
	if len(actual.Rows) != len(expected.Rows) {
		return Comparison{Reason: fmt.Sprintf(
			"expected %d rows, got %d", len(expected.Rows), len(actual.Rows))}
	}

	var note string
	for i := range expected.Columns {
		if !strings.EqualFold(expected.Columns[i], actual.Columns[i]) {
			note = fmt.Sprintf("column %d is named %q here and %q in the reference; names are not checked",
				i+1, actual.Columns[i], expected.Columns[i])
			break
		}
	}

	if p := lesson.Predicate; p != nil && p.Name == "column-non-decreasing" {
		if c := compareMultiset(expected, actual); !c.Correct {
			return c
		}
		if reason := checkNonDecreasing(actual, p.Column); reason != "" {
			return Comparison{Reason: reason}
		}
		return Comparison{Correct: true, Note: note}
	}

	var c Comparison
	if lesson.Ordered {
		c = compareOrdered(expected, actual)
	} else {
		c = compareMultiset(expected, actual)
	}
	if c.Correct {
		c.Note = note
	}
	return c
}

func compareOrdered(expected, actual Result) Comparison {
	for i := range expected.Rows {
		if j := firstDifference(expected.Rows[i], actual.Rows[i]); j >= 0 {
			return Comparison{Reason: fmt.Sprintf(
				"row %d, column %d: expected %s, got %s",
				i+1, j+1, renderValue(expected.Rows[i][j]), renderValue(actual.Rows[i][j]))}
		}
	}
	return Comparison{Correct: true}
}

// compareMultiset matches rows greedily without regard to order.
// Result sets here are small (the dataset has 20 fact rows), so the
// quadratic scan is fine.
func compareMultiset(expected, actual Result) Comparison {
	used := make([]bool, len(expected.Rows))
	for i, row := range actual.Rows {
		found := false
		for j, want := range expected.Rows {
			if used[j] {
				continue
			}
			if firstDifference(want, row) < 0 {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return Comparison{Reason: fmt.Sprintf(
				"row %d (%s) has no matching row in the expected result",
				i+1, renderRow(row))}
		}
	}
	return Comparison{Correct: true}
}

// checkNonDecreasing verifies the named column never decreases down
// the learner's rows. Returns an empty string on success.
func checkNonDecreasing(r Result, column string) string {
	idx := r.ColumnIndex(column)
	if idx < 0 {
		return fmt.Sprintf("result has no column named %q", column)
	}
	for i := 1; i < len(r.Rows); i++ {
		prev, pok := toFloat(r.Rows[i-1][idx])
		cur, cok := toFloat(r.Rows[i][idx])
		if !pok || !cok {
			continue
		}
		if cur < prev && !floatsClose(cur, prev) {
			return fmt.Sprintf("column %q decreases at row %d (%s after %s)",
				column, i+1, renderValue(r.Rows[i][idx]), renderValue(r.Rows[i-1][idx]))
		}
	}
	return ""
}

// firstDifference returns the index of the first differing value, or
// -1 when the rows are equal.
func firstDifference(want, got []any) int {
	for i := range want {
		if !valuesEqual(want[i], got[i]) {
			return i
		}
	}
	return -1
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		return floatsClose(af, bf)
	}
	if aNum != bNum {
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func floatsClose(a, b float64) bool {
	diff := math.Abs(a - b)
	if diff <= absTolerance {
		return true
	}
	return diff <= relTolerance*math.Max(math.Abs(a), math.Abs(b))
}

func renderValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}

func renderRow(row []any) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = renderValue(v)
	}
	return strings.Join(parts, ", ")
}
