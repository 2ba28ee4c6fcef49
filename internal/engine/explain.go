package engine

import "strings"

// ExecutionStep is one clause in a query's logical execution order.
type ExecutionStep struct {
	Clause    string
	Rationale string
}

// clauseOrder lists every explainable clause in logical execution
// order, with the substring that detects its presence.
var clauseOrder = []struct {
	clause    string
	marker    string
	rationale string
}{
	{"WITH (CTE)", "with ", "Build temporary result sets first"},
	{"FROM", "from ", "Load table(s)"},
	{"JOIN", "join ", "Combine with other tables"},
	{"WHERE", "where ", "Filter individual rows"},
	{"GROUP BY", "group by", "Collapse rows into groups"},
	{"HAVING", "having ", "Filter groups"},
	{"SELECT", "select ", "Compute output columns + aliases"},
	{"DISTINCT", "distinct", "Remove duplicates"},
	{"ORDER BY", "order by", "Sort results (can use aliases)"},
	{"LIMIT", "limit ", "Restrict row count"},
}

// ExplainOrder lists the clauses present in query in the order SQL
// logically executes them, not the order they are written. Detection
// is by keyword presence, which is all a teaching aid needs.
func ExplainOrder(query string) []ExecutionStep {
	lower := strings.ToLower(query)
	// A trailing clause may end the query without a following space.
	lower = lower + " "

	var steps []ExecutionStep
	for _, c := range clauseOrder {
		if strings.Contains(lower, c.marker) {
			steps = append(steps, ExecutionStep{Clause: c.clause, Rationale: c.rationale})
		}
	}
	return steps
}
