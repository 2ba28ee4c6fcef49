package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/BTECHK/sql-coach/internal/curriculum"
	"github.com/BTECHK/sql-coach/internal/engine"
)

// progressRepo persists the single-learner progress snapshot as one
// row with JSON-encoded collections.
type progressRepo struct {
	db *sql.DB
}

// Progress returns the engine's progress store backed by this
// database.
func (s *Store) Progress() engine.ProgressStore {
	return &progressRepo{db: s.db}
}

// progressRecord is the stored JSON shape of the collections.
type progressRecord struct {
	Completed  []string       `json:"completed"`
	HintCounts map[string]int `json:"hint_counts"`
	StepCounts map[string]int `json:"step_counts"`
}

func (r *progressRepo) Load(ctx context.Context) (engine.Snapshot, bool, error) {
	var (
		version    string
		current    string
		completed  string
		hintCounts string
		stepCounts string
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT version, current, completed, hint_counts, step_counts FROM progress WHERE id = 1").
		Scan(&version, &current, &completed, &hintCounts, &stepCounts)
	if err == sql.ErrNoRows {
		return engine.Snapshot{}, false, nil
	}
	if err != nil {
		return engine.Snapshot{}, false, fmt.Errorf("load progress: %w", err)
	}

	cur, err := curriculum.ParseLessonID(current)
	if err != nil {
		return engine.Snapshot{}, false, fmt.Errorf("load progress: %w", err)
	}

	snap := engine.Snapshot{Version: version, Current: cur}

	var rec progressRecord
	if err := json.Unmarshal([]byte(completed), &rec.Completed); err != nil {
		return engine.Snapshot{}, false, fmt.Errorf("decode progress: %w", err)
	}
	if err := json.Unmarshal([]byte(hintCounts), &rec.HintCounts); err != nil {
		return engine.Snapshot{}, false, fmt.Errorf("decode progress: %w", err)
	}
	if err := json.Unmarshal([]byte(stepCounts), &rec.StepCounts); err != nil {
		return engine.Snapshot{}, false, fmt.Errorf("decode progress: %w", err)
	}

	for _, c := range rec.Completed {
		id, err := curriculum.ParseLessonID(c)
		if err != nil {
			return engine.Snapshot{}, false, fmt.Errorf("decode progress: %w", err)
		}
		snap.Completed = append(snap.Completed, id)
	}
	snap.HintCounts = rec.HintCounts
	snap.StepCounts = rec.StepCounts
	return snap, true, nil
}

func (r *progressRepo) Save(ctx context.Context, snap engine.Snapshot) error {
	completed := make([]string, 0, len(snap.Completed))
	for _, id := range snap.Completed {
		completed = append(completed, id.String())
	}

	completedJSON, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	hintJSON, err := json.Marshal(orEmpty(snap.HintCounts))
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	stepJSON, err := json.Marshal(orEmpty(snap.StepCounts))
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO progress (id, version, current, completed, hint_counts, step_counts, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			version = excluded.version,
			current = excluded.current,
			completed = excluded.completed,
			hint_counts = excluded.hint_counts,
			step_counts = excluded.step_counts,
			updated_at = CURRENT_TIMESTAMP`,
		snap.Version, snap.Current.String(),
		string(completedJSON), string(hintJSON), string(stepJSON))
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func orEmpty(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
