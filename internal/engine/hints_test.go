package engine

import (
	"errors"
	"testing"

	"github.com/BTECHK/sql-coach/internal/curriculum"
)

func threeHintLesson() curriculum.Lesson {
	return curriculum.Lesson{
		Hints: []curriculum.Hint{
			{Stage: curriculum.StageClarifying, Text: "first"},
			{Stage: curriculum.StageApproach, Text: "second"},
			{Stage: curriculum.StageCode, Text: "third"},
		},
	}
}

func TestHintSequencerWalksInOrder(t *testing.T) {
	seq := NewHintSequencer(threeHintLesson())

	want := []string{"first", "second", "third"}
	for i, text := range want {
		h, err := seq.Next()
		if err != nil {
			t.Fatalf("Next() #%d error: %v", i+1, err)
		}
		if h.Text != text {
			t.Errorf("hint %d = %q, want %q", i+1, h.Text, text)
		}
		if seq.Used() != i+1 {
			t.Errorf("Used() = %d after %d hints", seq.Used(), i+1)
		}
	}
}

func TestHintSequencerExhaustionIsTerminal(t *testing.T) {
	seq := NewHintSequencer(threeHintLesson())
	for i := 0; i < 3; i++ {
		if _, err := seq.Next(); err != nil {
			t.Fatalf("Next() error: %v", err)
		}
	}

	for i := 0; i < 2; i++ {
		_, err := seq.Next()
		if !errors.Is(err, ErrNoMoreHints) {
			t.Fatalf("Next() after exhaustion = %v, want ErrNoMoreHints", err)
		}
	}
	if seq.Used() != 3 {
		t.Errorf("Used() = %d after exhaustion, want 3", seq.Used())
	}
}

func TestHintSequencerRestoreClamps(t *testing.T) {
	seq := NewHintSequencer(threeHintLesson())

	seq.Restore(2)
	h, err := seq.Next()
	if err != nil || h.Text != "third" {
		t.Errorf("Next() after Restore(2) = %q, %v", h.Text, err)
	}

	seq.Restore(99)
	if _, err := seq.Next(); !errors.Is(err, ErrNoMoreHints) {
		t.Errorf("Restore(99) should clamp to exhausted, got %v", err)
	}

	seq.Restore(-1)
	if seq.Used() != 0 {
		t.Errorf("Restore(-1) left Used() = %d", seq.Used())
	}
}

func TestSolutionRevealerServesSteps(t *testing.T) {
	lesson := curriculum.Lesson{
		Answer: "SELECT 1",
		Steps: []curriculum.Step{
			{SQL: "SELECT", Note: "start"},
			{SQL: "SELECT 1", Note: "done"},
		},
	}
	rev := NewSolutionRevealer(lesson)

	s1, err := rev.Next()
	if err != nil || s1.SQL != "SELECT" {
		t.Fatalf("first step = %q, %v", s1.SQL, err)
	}
	s2, err := rev.Next()
	if err != nil || s2.SQL != "SELECT 1" {
		t.Fatalf("second step = %q, %v", s2.SQL, err)
	}
	if _, err := rev.Next(); !errors.Is(err, ErrStepsExhausted) {
		t.Errorf("Next() after last step = %v, want ErrStepsExhausted", err)
	}
}

func TestFullAnswerDoesNotAdvanceSteps(t *testing.T) {
	lesson := curriculum.Lesson{
		Answer: "SELECT 1",
		Steps:  []curriculum.Step{{SQL: "SELECT"}, {SQL: "SELECT 1"}},
	}
	rev := NewSolutionRevealer(lesson)

	if got := rev.FullAnswer(); got != "SELECT 1" {
		t.Errorf("FullAnswer() = %q", got)
	}
	if rev.Revealed() != 0 {
		t.Errorf("Revealed() = %d after FullAnswer, want 0", rev.Revealed())
	}

	s, err := rev.Next()
	if err != nil || s.SQL != "SELECT" {
		t.Errorf("Next() after FullAnswer = %q, %v, want the first step", s.SQL, err)
	}
}

func TestExplainOrder(t *testing.T) {
	steps := ExplainOrder("SELECT campaign_id, SUM(clicks) FROM ad_performance_daily WHERE device = 'MOBILE' GROUP BY campaign_id HAVING SUM(clicks) > 100 ORDER BY campaign_id LIMIT 3")

	want := []string{"FROM", "WHERE", "GROUP BY", "HAVING", "SELECT", "ORDER BY", "LIMIT"}
	if len(steps) != len(want) {
		t.Fatalf("got %d steps %v, want %d", len(steps), steps, len(want))
	}
	for i, clause := range want {
		if steps[i].Clause != clause {
			t.Errorf("step %d = %s, want %s", i+1, steps[i].Clause, clause)
		}
		if steps[i].Rationale == "" {
			t.Errorf("step %d (%s) has no rationale", i+1, clause)
		}
	}
}

func TestExplainOrderDetectsCTEAndJoin(t *testing.T) {
	steps := ExplainOrder("WITH d AS (SELECT 1) SELECT * FROM d JOIN x ON 1=1")

	if len(steps) == 0 || steps[0].Clause != "WITH (CTE)" {
		t.Fatalf("steps = %v, want WITH (CTE) first", steps)
	}
	found := false
	for _, s := range steps {
		if s.Clause == "JOIN" {
			found = true
		}
	}
	if !found {
		t.Error("JOIN clause not detected")
	}
}

func TestExplainOrderTrailingClause(t *testing.T) {
	steps := ExplainOrder("SELECT * FROM t LIMIT 5")
	last := steps[len(steps)-1]
	if last.Clause != "LIMIT" {
		t.Errorf("last step = %s, want LIMIT", last.Clause)
	}
}
