package coach

import (
	"fmt"
	"strings"
)

const reviewSystemPrompt = `You are a patient SQL tutor reviewing a learner's incorrect query against a small SQLite advertising dataset (campaigns, ad_groups, ad_performance_daily, search_terms, conversions). Diagnose what went wrong and nudge the learner toward the fix. Never write the corrected query and never reveal the expected answer.`

func buildReviewUserMessage(input ReviewInput) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Lesson: %s — %s\n", input.Lesson.ID, input.Lesson.Title))
	b.WriteString(fmt.Sprintf("Concept: %s\n", input.Lesson.Concept))
	b.WriteString(fmt.Sprintf("Challenge: %s\n", input.Lesson.Challenge))

	b.WriteString("\nLearner's query:\n")
	b.WriteString(input.Query)
	b.WriteString("\n")

	if input.Reason != "" {
		b.WriteString(fmt.Sprintf("\nWhy the result was rejected: %s\n", input.Reason))
	}
	if input.HintsUsed > 0 {
		b.WriteString(fmt.Sprintf("Hints already taken: %d\n", input.HintsUsed))
	}

	b.WriteString(`
Instructions:
1. Diagnose the mistake in 1-2 sentences. Be specific about which clause or expression is wrong, not just that the output differs.
2. Give a 1-2 sentence nudge toward the fix. Point at the concept, not the code. Do NOT include any SQL in the nudge.
3. Name the single SQL concept the learner should revisit.`)

	return b.String()
}
