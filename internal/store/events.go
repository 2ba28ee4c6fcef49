package store

import (
	"context"
	"database/sql"

	"github.com/BTECHK/sql-coach/internal/curriculum"
	"github.com/BTECHK/sql-coach/internal/engine"
)

// eventRecorder appends learning events. Failures are dropped: the
// event log is a nice-to-have and must never interrupt a lesson.
type eventRecorder struct {
	db    *sql.DB
	runID string
}

// Events returns the engine's event recorder backed by this database.
func (s *Store) Events() engine.EventRecorder {
	return &eventRecorder{db: s.db, runID: s.runID}
}

func (r *eventRecorder) RecordSubmission(ctx context.Context, lesson curriculum.LessonID, query string, correct bool) {
	_, _ = r.db.ExecContext(ctx,
		"INSERT INTO submission_events (run_id, lesson, query, correct) VALUES (?, ?, ?, ?)",
		r.runID, lesson.String(), query, boolToInt(correct))
}

func (r *eventRecorder) RecordHint(ctx context.Context, lesson curriculum.LessonID, stage curriculum.HintStage, ordinal int) {
	_, _ = r.db.ExecContext(ctx,
		"INSERT INTO hint_events (run_id, lesson, stage, ordinal) VALUES (?, ?, ?, ?)",
		r.runID, lesson.String(), string(stage), ordinal)
}

func (r *eventRecorder) RecordReveal(ctx context.Context, lesson curriculum.LessonID, kind string, ordinal int) {
	_, _ = r.db.ExecContext(ctx,
		"INSERT INTO reveal_events (run_id, lesson, kind, ordinal) VALUES (?, ?, ?, ?)",
		r.runID, lesson.String(), kind, ordinal)
}

// LLMEvent captures one model call for the llm_events log.
type LLMEvent struct {
	Provider     string
	Model        string
	Purpose      string
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RecordLLM appends an llm_events row. Dropped on failure like the
// other recorders.
func (s *Store) RecordLLM(ctx context.Context, ev LLMEvent) {
	_, _ = s.db.ExecContext(ctx,
		"INSERT INTO llm_events (run_id, provider, model, purpose, latency_ms, success, error_message) VALUES (?, ?, ?, ?, ?, ?, ?)",
		s.runID, ev.Provider, ev.Model, ev.Purpose, ev.LatencyMs, boolToInt(ev.Success), ev.ErrorMessage)
}

// SubmissionStats summarizes the submission log for one lesson, or for
// all lessons when lesson is empty.
type SubmissionStats struct {
	Total   int
	Correct int
}

// SubmissionStats aggregates the submission event log.
func (s *Store) SubmissionStats(ctx context.Context, lesson string) (SubmissionStats, error) {
	q := "SELECT COUNT(*), COALESCE(SUM(correct), 0) FROM submission_events"
	args := []any{}
	if lesson != "" {
		q += " WHERE lesson = ?"
		args = append(args, lesson)
	}

	var st SubmissionStats
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&st.Total, &st.Correct); err != nil {
		return SubmissionStats{}, err
	}
	return st, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
