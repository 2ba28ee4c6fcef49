package llm

import "context"

type purposeKeyType struct{}

var purposeKey purposeKeyType

// WithPurpose tags the context with why this model call is happening
// ("coach-review" and the like), so the event log can attribute usage.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom reads the purpose tag, or "unknown" for untagged calls.
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey).(string); ok {
		return p
	}
	return "unknown"
}
