package coach

import "github.com/BTECHK/sql-coach/internal/llm"

// ReviewSchema defines the JSON schema for submission reviews.
var ReviewSchema = &llm.Schema{
	Name:        "coach-review",
	Description: "A short diagnosis of an incorrect SQL submission plus a nudge toward the fix",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"diagnosis": map[string]any{
				"type":        "string",
				"description": "1-2 sentence diagnosis of what the query gets wrong",
			},
			"nudge": map[string]any{
				"type":        "string",
				"description": "1-2 sentence hint pointing toward the fix, without giving the answer",
			},
			"concept": map[string]any{
				"type":        "string",
				"description": "The single SQL concept the learner should revisit (2-5 words)",
			},
		},
		"required":             []any{"diagnosis", "nudge", "concept"},
		"additionalProperties": false,
	},
}
