package curriculum

import (
	"strings"
	"testing"
)

func mustLoad(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return c
}

func TestLoadEmbeddedCurriculum(t *testing.T) {
	c := mustLoad(t)

	if got := c.Total(); got != 13 {
		t.Errorf("Total() = %d, want 13", got)
	}
	if got := len(c.Phases()); got != 4 {
		t.Errorf("len(Phases()) = %d, want 4", got)
	}
	if got := c.Version(); got != "1.0.0" {
		t.Errorf("Version() = %q, want 1.0.0", got)
	}
	if got := c.First(); got != (LessonID{Phase: 1, Index: 1}) {
		t.Errorf("First() = %s, want 1.1", got)
	}
}

func TestEveryLessonIsComplete(t *testing.T) {
	c := mustLoad(t)

	for _, l := range c.Lessons() {
		if l.Title == "" || l.Concept == "" || l.Challenge == "" || l.Answer == "" {
			t.Errorf("lesson %s has an empty required field", l.ID)
		}
		if len(l.Hints) == 0 {
			t.Errorf("lesson %s has no hints", l.ID)
		}
		if len(l.Steps) == 0 {
			t.Errorf("lesson %s has no solution steps", l.ID)
		}
		last := l.Steps[len(l.Steps)-1].SQL
		if !strings.HasPrefix(strings.TrimSpace(last), "SELECT") &&
			!strings.HasPrefix(strings.TrimSpace(last), "WITH") {
			t.Errorf("lesson %s: final step %q is not a complete query", l.ID, last)
		}
	}
}

func TestHintStagesAreOrdered(t *testing.T) {
	c := mustLoad(t)

	for _, l := range c.Lessons() {
		prev := -1
		for i, h := range l.Hints {
			r := stageRank(h.Stage)
			if r > 3 {
				t.Errorf("lesson %s hint %d: unknown stage %q", l.ID, i, h.Stage)
			}
			if r < prev {
				t.Errorf("lesson %s hint %d: stage %q out of order", l.ID, i, h.Stage)
			}
			prev = r
		}
	}
}

func TestNextWalksLinearOrder(t *testing.T) {
	c := mustLoad(t)

	id := c.First()
	seen := []string{id.String()}
	for {
		next, ok := c.Next(id)
		if !ok {
			break
		}
		id = next
		seen = append(seen, id.String())
	}

	if len(seen) != c.Total() {
		t.Fatalf("walked %d lessons, want %d", len(seen), c.Total())
	}
	if seen[0] != "1.1" || seen[len(seen)-1] != "4.3" {
		t.Errorf("walk = %v, want 1.1 .. 4.3", seen)
	}

	// Phase boundary: 1.4 is followed by 2.1, not 1.5.
	next, ok := c.Next(LessonID{Phase: 1, Index: 4})
	if !ok || next != (LessonID{Phase: 2, Index: 1}) {
		t.Errorf("Next(1.4) = %v, %v, want 2.1, true", next, ok)
	}
}

func TestNextAtEndOfCurriculum(t *testing.T) {
	c := mustLoad(t)

	if _, ok := c.Next(LessonID{Phase: 4, Index: 3}); ok {
		t.Error("Next(4.3) reported a following lesson")
	}
	if _, ok := c.Next(LessonID{Phase: 9, Index: 9}); ok {
		t.Error("Next(unknown) reported a following lesson")
	}
}

func TestLessonLookup(t *testing.T) {
	c := mustLoad(t)

	l, ok := c.Lesson(LessonID{Phase: 2, Index: 3})
	if !ok {
		t.Fatal("Lesson(2.3) not found")
	}
	if !strings.Contains(l.Title, "HAVING") {
		t.Errorf("Lesson(2.3).Title = %q, want a HAVING lesson", l.Title)
	}

	if _, ok := c.Lesson(LessonID{Phase: 5, Index: 1}); ok {
		t.Error("Lesson(5.1) unexpectedly found")
	}
}

func TestPosition(t *testing.T) {
	c := mustLoad(t)

	tests := []struct {
		id   string
		want int
	}{
		{"1.1", 0},
		{"1.4", 3},
		{"2.1", 4},
		{"4.3", 12},
		{"7.7", -1},
	}
	for _, tt := range tests {
		id, _ := ParseLessonID(tt.id)
		if got := c.Position(id); got != tt.want {
			t.Errorf("Position(%s) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestOrderedLessons(t *testing.T) {
	c := mustLoad(t)

	ordered := map[string]bool{"1.3": true, "1.4": true, "4.2": true, "4.3": true}
	for _, l := range c.Lessons() {
		if got := l.Ordered; got != ordered[l.ID.String()] {
			t.Errorf("lesson %s: Ordered = %v, want %v", l.ID, got, ordered[l.ID.String()])
		}
	}
}

func TestPhaseOf(t *testing.T) {
	c := mustLoad(t)

	p, ok := c.PhaseOf(LessonID{Phase: 3, Index: 2})
	if !ok {
		t.Fatal("PhaseOf(3.2) not found")
	}
	if p.Number != 3 || !strings.Contains(p.Title, "JOIN") {
		t.Errorf("PhaseOf(3.2) = phase %d %q, want the JOINs phase", p.Number, p.Title)
	}
}
