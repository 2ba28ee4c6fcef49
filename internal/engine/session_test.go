package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/BTECHK/sql-coach/internal/curriculum"
)

// fakeExecutor resolves queries from a fixed map, so session tests
// need no database.
type fakeExecutor struct {
	results map[string]Result
}

func (f *fakeExecutor) Execute(_ context.Context, query string) (Result, error) {
	if r, ok := f.results[query]; ok {
		return r, nil
	}
	return Result{}, &ExecutionError{Query: query, Err: errors.New("no such table")}
}

// memoryStore keeps the snapshot in memory and can be told to fail.
type memoryStore struct {
	snap    Snapshot
	found   bool
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryStore) Load(context.Context) (Snapshot, bool, error) {
	return m.snap, m.found, m.loadErr
}

func (m *memoryStore) Save(_ context.Context, snap Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snap = snap
	m.found = true
	m.saves++
	return nil
}

type recordedEvent struct {
	kind    string
	lesson  string
	detail  string
	correct bool
}

type memoryRecorder struct {
	events []recordedEvent
}

func (m *memoryRecorder) RecordSubmission(_ context.Context, l curriculum.LessonID, query string, correct bool) {
	m.events = append(m.events, recordedEvent{kind: "submission", lesson: l.String(), detail: query, correct: correct})
}

func (m *memoryRecorder) RecordHint(_ context.Context, l curriculum.LessonID, stage curriculum.HintStage, _ int) {
	m.events = append(m.events, recordedEvent{kind: "hint", lesson: l.String(), detail: string(stage)})
}

func (m *memoryRecorder) RecordReveal(_ context.Context, l curriculum.LessonID, kind string, _ int) {
	m.events = append(m.events, recordedEvent{kind: "reveal", lesson: l.String(), detail: kind})
}

// testCatalog builds a two-phase, three-lesson catalog with canned
// answers the fake executor understands.
func testCatalog(t *testing.T) *curriculum.Catalog {
	t.Helper()
	doc := `{
	  "version": "1.0.0",
	  "phases": [
	    {"id": 1, "title": "One", "lessons": [
	      {"id": "1.1", "title": "A", "concept": "c", "challenge": "ch",
	       "answer": "SELECT a",
	       "hints": [{"stage": "approach", "text": "h1"}, {"stage": "code", "text": "h2"}],
	       "steps": [{"sql": "SELECT"}, {"sql": "SELECT a"}]},
	      {"id": "1.2", "title": "B", "concept": "c", "challenge": "ch",
	       "answer": "SELECT b",
	       "hints": [{"stage": "approach", "text": "h1"}],
	       "steps": [{"sql": "SELECT b"}]}
	    ]},
	    {"id": 2, "title": "Two", "lessons": [
	      {"id": "2.1", "title": "C", "concept": "c", "challenge": "ch",
	       "answer": "SELECT c",
	       "hints": [{"stage": "approach", "text": "h1"}],
	       "steps": [{"sql": "SELECT c"}]}
	    ]}
	  ]
	}`
	c, err := curriculum.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("load test catalog: %v", err)
	}
	return c
}

func testExecutor() *fakeExecutor {
	one := res([]string{"a"}, []any{int64(1)})
	two := res([]string{"b"}, []any{int64(2)})
	three := res([]string{"c"}, []any{int64(3)})
	return &fakeExecutor{results: map[string]Result{
		"SELECT a":     one,
		"SELECT a ok":  one,
		"SELECT a bad": two,
		"SELECT b":     two,
		"SELECT c":     three,
	}}
}

func newTestSession(t *testing.T, store ProgressStore, events EventRecorder) *Session {
	t.Helper()
	s, err := New(context.Background(), Config{
		Catalog:  testCatalog(t),
		Executor: testExecutor(),
		Progress: store,
		Events:   events,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func TestSessionStartsAtFirstLesson(t *testing.T) {
	s := newTestSession(t, nil, nil)

	if got := s.CurrentID().String(); got != "1.1" {
		t.Errorf("CurrentID() = %s, want 1.1", got)
	}
	if s.ReadyToAdvance() {
		t.Error("fresh session reports ready to advance")
	}
}

func TestSubmitCorrectMarksCompleteAndReady(t *testing.T) {
	rec := &memoryRecorder{}
	s := newTestSession(t, nil, rec)

	sub, err := s.Submit(context.Background(), "SELECT a ok")
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if !sub.Comparison.Correct || !sub.Completed {
		t.Errorf("Submit() = %+v, want correct and completed", sub)
	}
	if !s.ReadyToAdvance() {
		t.Error("ReadyToAdvance() = false after correct submission")
	}
	if !s.Completed(curriculum.LessonID{Phase: 1, Index: 1}) {
		t.Error("lesson 1.1 not marked completed")
	}

	if len(rec.events) != 1 || rec.events[0].kind != "submission" || !rec.events[0].correct {
		t.Errorf("events = %+v", rec.events)
	}
}

func TestSubmitWrongLeavesLessonOpen(t *testing.T) {
	s := newTestSession(t, nil, nil)

	sub, err := s.Submit(context.Background(), "SELECT a bad")
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if sub.Comparison.Correct || sub.Completed {
		t.Errorf("Submit() = %+v, want incorrect", sub)
	}
	if s.ReadyToAdvance() {
		t.Error("ReadyToAdvance() = true after wrong submission")
	}
}

func TestSubmitSecondTimeReportsAlreadyDone(t *testing.T) {
	s := newTestSession(t, nil, nil)

	if _, err := s.Submit(context.Background(), "SELECT a ok"); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	sub, err := s.Submit(context.Background(), "SELECT a ok")
	if err != nil {
		t.Fatalf("second Submit() error: %v", err)
	}
	if sub.Completed || !sub.AlreadyDone {
		t.Errorf("second Submit() = %+v, want AlreadyDone without Completed", sub)
	}
}

func TestSubmitExecutionFailureIsNotFatal(t *testing.T) {
	s := newTestSession(t, nil, nil)

	_, err := s.Submit(context.Background(), "SELECT broken")
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("Submit() error = %v, want *ExecutionError", err)
	}

	// The session keeps working afterwards.
	if _, err := s.Submit(context.Background(), "SELECT a ok"); err != nil {
		t.Errorf("Submit() after failure error: %v", err)
	}
}

func TestAdvanceWalksAndStopsAtEnd(t *testing.T) {
	s := newTestSession(t, nil, nil)

	l, err := s.Advance(context.Background())
	if err != nil || l.ID.String() != "1.2" {
		t.Fatalf("Advance() = %s, %v", l.ID, err)
	}
	l, err = s.Advance(context.Background())
	if err != nil || l.ID.String() != "2.1" {
		t.Fatalf("Advance() = %s, %v", l.ID, err)
	}
	_, err = s.Advance(context.Background())
	if !errors.Is(err, ErrEndOfCurriculum) {
		t.Errorf("Advance() at end = %v, want ErrEndOfCurriculum", err)
	}
	if got := s.CurrentID().String(); got != "2.1" {
		t.Errorf("CurrentID() after failed advance = %s, want 2.1", got)
	}
}

func TestSkipDoesNotComplete(t *testing.T) {
	s := newTestSession(t, nil, nil)

	if _, err := s.Skip(context.Background()); err != nil {
		t.Fatalf("Skip() error: %v", err)
	}
	if s.Completed(curriculum.LessonID{Phase: 1, Index: 1}) {
		t.Error("Skip() marked the lesson complete")
	}
	if got := s.CurrentID().String(); got != "1.2" {
		t.Errorf("CurrentID() = %s, want 1.2", got)
	}
}

func TestJumpValidatesLesson(t *testing.T) {
	s := newTestSession(t, nil, nil)

	l, err := s.Jump(context.Background(), curriculum.LessonID{Phase: 2, Index: 1})
	if err != nil || l.ID.String() != "2.1" {
		t.Fatalf("Jump(2.1) = %s, %v", l.ID, err)
	}

	_, err = s.Jump(context.Background(), curriculum.LessonID{Phase: 9, Index: 9})
	if !errors.Is(err, ErrUnknownLesson) {
		t.Errorf("Jump(9.9) = %v, want ErrUnknownLesson", err)
	}
	if got := s.CurrentID().String(); got != "2.1" {
		t.Errorf("CurrentID() after failed jump = %s, want 2.1", got)
	}
}

func TestTransitionsZeroHintAndStepCounters(t *testing.T) {
	s := newTestSession(t, nil, nil)

	if _, err := s.Hint(context.Background()); err != nil {
		t.Fatalf("Hint() error: %v", err)
	}
	if _, err := s.RevealStep(context.Background()); err != nil {
		t.Fatalf("RevealStep() error: %v", err)
	}

	// Leave and come back; the counters start over.
	if _, err := s.Advance(context.Background()); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	if _, err := s.Jump(context.Background(), curriculum.LessonID{Phase: 1, Index: 1}); err != nil {
		t.Fatalf("Jump() error: %v", err)
	}

	if got := s.HintsUsed(); got != 0 {
		t.Errorf("HintsUsed() = %d after re-entry, want 0", got)
	}
	if got := s.StepsRevealed(); got != 0 {
		t.Errorf("StepsRevealed() = %d after re-entry, want 0", got)
	}
}

func TestHintExhaustionViaSession(t *testing.T) {
	s := newTestSession(t, nil, nil)

	for i := 0; i < 2; i++ {
		if _, err := s.Hint(context.Background()); err != nil {
			t.Fatalf("Hint() #%d error: %v", i+1, err)
		}
	}
	if _, err := s.Hint(context.Background()); !errors.Is(err, ErrNoMoreHints) {
		t.Errorf("Hint() = %v, want ErrNoMoreHints", err)
	}
	if got := s.HintsUsed(); got != 2 {
		t.Errorf("HintsUsed() = %d, want 2", got)
	}
}

func TestResetHintsStartsOverWithoutLeaving(t *testing.T) {
	s := newTestSession(t, nil, nil)

	if _, err := s.Submit(context.Background(), "SELECT a ok"); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if _, err := s.Hint(context.Background()); err != nil {
		t.Fatalf("Hint() error: %v", err)
	}
	if _, err := s.RevealStep(context.Background()); err != nil {
		t.Fatalf("RevealStep() error: %v", err)
	}

	s.ResetHints(context.Background())

	if got := s.HintsUsed(); got != 0 {
		t.Errorf("HintsUsed() = %d after reset, want 0", got)
	}
	if got := s.StepsRevealed(); got != 0 {
		t.Errorf("StepsRevealed() = %d after reset, want 0", got)
	}

	// The sequence restarts from the first hint.
	h, err := s.Hint(context.Background())
	if err != nil {
		t.Fatalf("Hint() after reset error: %v", err)
	}
	if h.Text != "h1" {
		t.Errorf("Hint().Text = %q after reset, want %q", h.Text, "h1")
	}

	// Completion survives the reset.
	if !s.Completed(s.CurrentID()) {
		t.Error("Completed() = false after reset, want true")
	}
}

func TestFullAnswerLogsRevealWithoutAdvancing(t *testing.T) {
	rec := &memoryRecorder{}
	s := newTestSession(t, nil, rec)

	if got := s.FullAnswer(context.Background()); got != "SELECT a" {
		t.Errorf("FullAnswer() = %q", got)
	}
	if got := s.StepsRevealed(); got != 0 {
		t.Errorf("StepsRevealed() = %d after FullAnswer, want 0", got)
	}
	if len(rec.events) != 1 || rec.events[0].detail != RevealFull {
		t.Errorf("events = %+v, want one full reveal", rec.events)
	}
}

func TestProgressRoundTrip(t *testing.T) {
	store := &memoryStore{}
	s := newTestSession(t, store, nil)

	if _, err := s.Submit(context.Background(), "SELECT a ok"); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if _, err := s.Advance(context.Background()); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	if _, err := s.Hint(context.Background()); err != nil {
		t.Fatalf("Hint() error: %v", err)
	}

	// A new session over the same store resumes where we left off.
	s2 := newTestSession(t, store, nil)
	if got := s2.CurrentID().String(); got != "1.2" {
		t.Errorf("resumed CurrentID() = %s, want 1.2", got)
	}
	if !s2.Completed(curriculum.LessonID{Phase: 1, Index: 1}) {
		t.Error("resumed session lost completion of 1.1")
	}
	if got := s2.HintsUsed(); got != 1 {
		t.Errorf("resumed HintsUsed() = %d, want 1", got)
	}
}

func TestMajorVersionMismatchStartsFresh(t *testing.T) {
	store := &memoryStore{
		found: true,
		snap: Snapshot{
			Version:   "2.0.0",
			Current:   curriculum.LessonID{Phase: 2, Index: 1},
			Completed: []curriculum.LessonID{{Phase: 1, Index: 1}},
		},
	}
	s, err := New(context.Background(), Config{
		Catalog:  testCatalog(t),
		Executor: testExecutor(),
		Progress: store,
	})
	if err == nil {
		t.Fatal("New() reported no warning for incompatible progress")
	}
	if got := s.CurrentID().String(); got != "1.1" {
		t.Errorf("CurrentID() = %s, want fresh start at 1.1", got)
	}
	if s.Completed(curriculum.LessonID{Phase: 1, Index: 1}) {
		t.Error("incompatible completion history was kept")
	}
}

func TestLoadFailureIsNonFatal(t *testing.T) {
	store := &memoryStore{loadErr: errors.New("disk on fire")}
	s, err := New(context.Background(), Config{
		Catalog:  testCatalog(t),
		Executor: testExecutor(),
		Progress: store,
	})
	if !errors.Is(err, ErrProgressUnavailable) {
		t.Fatalf("New() error = %v, want ErrProgressUnavailable", err)
	}
	if s == nil {
		t.Fatal("New() returned no session alongside the load warning")
	}
	if _, err := s.Submit(context.Background(), "SELECT a ok"); err != nil {
		t.Errorf("session unusable after load failure: %v", err)
	}
}

func TestSaveFailureIsRememberedNotFatal(t *testing.T) {
	store := &memoryStore{saveErr: errors.New("read-only fs")}
	s := newTestSession(t, store, nil)

	sub, err := s.Submit(context.Background(), "SELECT a ok")
	if err != nil || !sub.Completed {
		t.Fatalf("Submit() = %+v, %v", sub, err)
	}
	if !errors.Is(s.SaveError(), ErrProgressUnavailable) {
		t.Errorf("SaveError() = %v, want ErrProgressUnavailable", s.SaveError())
	}
}

func TestResetProgress(t *testing.T) {
	store := &memoryStore{}
	s := newTestSession(t, store, nil)

	if _, err := s.Submit(context.Background(), "SELECT a ok"); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if _, err := s.Advance(context.Background()); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}

	s.ResetProgress(context.Background())
	if got := s.CurrentID().String(); got != "1.1" {
		t.Errorf("CurrentID() = %s after reset, want 1.1", got)
	}
	if s.Completed(curriculum.LessonID{Phase: 1, Index: 1}) {
		t.Error("reset kept completion history")
	}

	s2 := newTestSession(t, store, nil)
	if s2.Completed(curriculum.LessonID{Phase: 1, Index: 1}) {
		t.Error("reset was not persisted")
	}
}

func TestSummarize(t *testing.T) {
	s := newTestSession(t, nil, nil)
	if _, err := s.Submit(context.Background(), "SELECT a ok"); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}

	sum := s.Summarize()
	if sum.Total != 3 || sum.Done != 1 {
		t.Errorf("Summary = %d/%d, want 1/3", sum.Done, sum.Total)
	}
	if len(sum.Phases) != 2 {
		t.Fatalf("len(Phases) = %d, want 2", len(sum.Phases))
	}
	if sum.Phases[0].Done != 1 || !sum.Phases[0].Lessons[0].Completed {
		t.Errorf("phase 1 = %+v", sum.Phases[0])
	}
	if !sum.Phases[0].Lessons[0].Current {
		t.Error("lesson 1.1 not marked current")
	}
}

func TestExplainLastFallsBackToReference(t *testing.T) {
	s := newTestSession(t, nil, nil)

	steps, usedRef := s.ExplainLast()
	if !usedRef || len(steps) == 0 {
		t.Errorf("ExplainLast() = %v, %v, want reference fallback", steps, usedRef)
	}

	if _, err := s.Submit(context.Background(), "SELECT a ok"); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	steps, usedRef = s.ExplainLast()
	if usedRef {
		t.Error("ExplainLast() still using reference after a submission")
	}
	if len(steps) == 0 || !strings.Contains(steps[0].Clause, "SELECT") {
		t.Errorf("steps = %v", steps)
	}
}
