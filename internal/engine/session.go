package engine

import (
	"context"
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/BTECHK/sql-coach/internal/curriculum"
)

// Executor runs learner SQL against the practice dataset.
type Executor interface {
	Execute(ctx context.Context, query string) (Result, error)
}

// Snapshot is the persistent view of a learner's progress. Counter
// maps are keyed by lesson id string ("2.3").
type Snapshot struct {
	Version    string
	Current    curriculum.LessonID
	Completed  []curriculum.LessonID
	HintCounts map[string]int
	StepCounts map[string]int
}

// ProgressStore persists snapshots between runs.
type ProgressStore interface {
	// Load returns the stored snapshot, or found=false when none exists.
	Load(ctx context.Context) (snap Snapshot, found bool, err error)
	Save(ctx context.Context, snap Snapshot) error
}

// EventRecorder logs learning events for later review. Implementations
// swallow their own errors; event logging never interrupts a session.
type EventRecorder interface {
	RecordSubmission(ctx context.Context, lesson curriculum.LessonID, query string, correct bool)
	RecordHint(ctx context.Context, lesson curriculum.LessonID, stage curriculum.HintStage, ordinal int)
	RecordReveal(ctx context.Context, lesson curriculum.LessonID, kind string, ordinal int)
}

// Reveal event kinds.
const (
	RevealStep = "step"
	RevealFull = "full"
)

// Config assembles a session's collaborators. Progress and Events may
// be nil, in which case the session runs purely in memory.
type Config struct {
	Catalog  *curriculum.Catalog
	Executor Executor
	Progress ProgressStore
	Events   EventRecorder
}

// Session drives one learner through the curriculum: it grades
// submissions, meters hints and solution steps, and tracks position
// and completion. It is not safe for concurrent use; both front-ends
// are single-threaded.
type Session struct {
	catalog *curriculum.Catalog
	exec    Executor
	store   ProgressStore
	events  EventRecorder

	current   curriculum.LessonID
	completed map[curriculum.LessonID]bool
	ready     bool

	hints map[curriculum.LessonID]*HintSequencer
	steps map[curriculum.LessonID]*SolutionRevealer

	// counters loaded from the snapshot, consumed lazily the first
	// time each lesson's sequencer is built.
	restoredHints map[string]int
	restoredSteps map[string]int

	lastQuery  string
	lastResult *Result

	saveErr error
}

// New builds a session, resuming stored progress when available. The
// session is always usable; a non-nil error means stored progress
// could not be loaded (or belongs to an incompatible curriculum) and
// the session started fresh. Such errors wrap ErrProgressUnavailable
// where the store itself failed.
func New(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.Catalog == nil || cfg.Executor == nil {
		return nil, fmt.Errorf("session needs a catalog and an executor")
	}

	s := &Session{
		catalog:       cfg.Catalog,
		exec:          cfg.Executor,
		store:         cfg.Progress,
		events:        cfg.Events,
		current:       cfg.Catalog.First(),
		completed:     make(map[curriculum.LessonID]bool),
		hints:         make(map[curriculum.LessonID]*HintSequencer),
		steps:         make(map[curriculum.LessonID]*SolutionRevealer),
		restoredHints: map[string]int{},
		restoredSteps: map[string]int{},
	}

	if cfg.Progress == nil {
		return s, nil
	}

	snap, found, err := cfg.Progress.Load(ctx)
	if err != nil {
		return s, fmt.Errorf("%w: %v", ErrProgressUnavailable, err)
	}
	if !found {
		return s, nil
	}

	if semver.Major("v"+snap.Version) != semver.Major("v"+cfg.Catalog.Version()) {
		return s, fmt.Errorf("stored progress is for curriculum %s, current is %s: starting fresh",
			snap.Version, cfg.Catalog.Version())
	}

	if _, ok := cfg.Catalog.Lesson(snap.Current); ok {
		s.current = snap.Current
	}
	for _, id := range snap.Completed {
		if _, ok := cfg.Catalog.Lesson(id); ok {
			s.completed[id] = true
		}
	}
	if snap.HintCounts != nil {
		s.restoredHints = snap.HintCounts
	}
	if snap.StepCounts != nil {
		s.restoredSteps = snap.StepCounts
	}
	return s, nil
}

// Current returns the active lesson.
func (s *Session) Current() curriculum.Lesson {
	l, _ := s.catalog.Lesson(s.current)
	return l
}

// CurrentID returns the active lesson's id.
func (s *Session) CurrentID() curriculum.LessonID {
	return s.current
}

// Catalog exposes the curriculum the session runs over.
func (s *Session) Catalog() *curriculum.Catalog {
	return s.catalog
}

// ReadyToAdvance reports whether the active lesson has been solved in
// this position, so front-ends can suggest moving on.
func (s *Session) ReadyToAdvance() bool {
	return s.ready
}

// Completed reports whether the lesson has ever been completed.
func (s *Session) Completed(id curriculum.LessonID) bool {
	return s.completed[id]
}

// Submission is the full outcome of grading one query.
type Submission struct {
	Result     Result
	Comparison Comparison
	// Completed is set when this submission solved the lesson for the
	// first time.
	Completed bool
	// AlreadyDone is set when the lesson was solved before this
	// submission, regardless of this one's verdict.
	AlreadyDone bool
	// FollowUp carries the lesson's stretch exercise on a correct
	// submission.
	FollowUp string
}

// Submit grades a learner query against the active lesson. Execution
// failures of the learner's query return *ExecutionError; a failure of
// the lesson's own reference query is reported as an internal error.
func (s *Session) Submit(ctx context.Context, query string) (Submission, error) {
	lesson := s.Current()

	actual, err := s.exec.Execute(ctx, query)
	if err != nil {
		s.lastQuery = query
		s.lastResult = nil
		return Submission{}, err
	}

	expected, err := s.exec.Execute(ctx, lesson.Answer)
	if err != nil {
		return Submission{}, fmt.Errorf("reference query for lesson %s: %w", lesson.ID, err)
	}

	cmp := Compare(expected, actual, lesson)
	s.lastQuery = query
	s.lastResult = &actual

	if s.events != nil {
		s.events.RecordSubmission(ctx, lesson.ID, query, cmp.Correct)
	}

	sub := Submission{
		Result:      actual,
		Comparison:  cmp,
		AlreadyDone: s.completed[lesson.ID],
	}
	if cmp.Correct {
		if !sub.AlreadyDone {
			sub.Completed = true
		}
		s.completed[lesson.ID] = true
		s.ready = true
		sub.FollowUp = lesson.FollowUp
		s.persist(ctx)
	}
	return sub, nil
}

// Hint reveals the next hint for the active lesson. Once hints run out
// it keeps returning ErrNoMoreHints.
func (s *Session) Hint(ctx context.Context) (curriculum.Hint, error) {
	seq := s.hintSeq(s.current)
	hint, err := seq.Next()
	if err != nil {
		return curriculum.Hint{}, err
	}
	if s.events != nil {
		s.events.RecordHint(ctx, s.current, hint.Stage, seq.Used())
	}
	s.persist(ctx)
	return hint, nil
}

// HintsUsed returns how many hints the active lesson has consumed.
func (s *Session) HintsUsed() int {
	return s.hintSeq(s.current).Used()
}

// HintsRemaining returns how many hints the active lesson still has.
func (s *Session) HintsRemaining() int {
	return s.hintSeq(s.current).Remaining()
}

// RevealStep serves the next increment of the reference solution.
// Once the solution is fully revealed it keeps returning
// ErrStepsExhausted.
func (s *Session) RevealStep(ctx context.Context) (curriculum.Step, error) {
	rev := s.stepSeq(s.current)
	step, err := rev.Next()
	if err != nil {
		return curriculum.Step{}, err
	}
	if s.events != nil {
		s.events.RecordReveal(ctx, s.current, RevealStep, rev.Revealed())
	}
	s.persist(ctx)
	return step, nil
}

// StepsRevealed returns how many solution steps the active lesson has
// served.
func (s *Session) StepsRevealed() int {
	return s.stepSeq(s.current).Revealed()
}

// FullAnswer returns the complete reference query. It does not advance
// the step position, but the reveal is logged like any other.
func (s *Session) FullAnswer(ctx context.Context) string {
	if s.events != nil {
		s.events.RecordReveal(ctx, s.current, RevealFull, 0)
	}
	return s.stepSeq(s.current).FullAnswer()
}

// Advance moves to the next lesson in curriculum order, regardless of
// whether the current one was solved. Returns ErrEndOfCurriculum at
// the final lesson.
func (s *Session) Advance(ctx context.Context) (curriculum.Lesson, error) {
	next, ok := s.catalog.Next(s.current)
	if !ok {
		return curriculum.Lesson{}, ErrEndOfCurriculum
	}
	s.enter(ctx, next)
	return s.Current(), nil
}

// Skip moves past the current lesson without marking it complete. It
// navigates exactly like Advance; the name exists so front-ends can
// say what the learner meant.
func (s *Session) Skip(ctx context.Context) (curriculum.Lesson, error) {
	return s.Advance(ctx)
}

// Jump moves directly to the named lesson. Returns ErrUnknownLesson
// when the id is not in the catalog.
func (s *Session) Jump(ctx context.Context, id curriculum.LessonID) (curriculum.Lesson, error) {
	if _, ok := s.catalog.Lesson(id); !ok {
		return curriculum.Lesson{}, fmt.Errorf("%w: %s", ErrUnknownLesson, id)
	}
	s.enter(ctx, id)
	return s.Current(), nil
}

// enter makes id the active lesson with fresh hint and step counters.
// Completion history is kept; only the metering starts over.
func (s *Session) enter(ctx context.Context, id curriculum.LessonID) {
	s.current = id
	s.ready = false
	s.lastQuery = ""
	s.lastResult = nil
	delete(s.hints, id)
	delete(s.steps, id)
	delete(s.restoredHints, id.String())
	delete(s.restoredSteps, id.String())
	s.persist(ctx)
}

// ResetHints zeroes the current lesson's hint and step counters, so
// the next hint is the first one again. Completion state is untouched.
func (s *Session) ResetHints(ctx context.Context) {
	id := s.current
	delete(s.hints, id)
	delete(s.steps, id)
	delete(s.restoredHints, id.String())
	delete(s.restoredSteps, id.String())
	s.persist(ctx)
}

// ResetProgress discards all completion history and counters and
// returns to the first lesson.
func (s *Session) ResetProgress(ctx context.Context) {
	s.completed = make(map[curriculum.LessonID]bool)
	s.hints = make(map[curriculum.LessonID]*HintSequencer)
	s.steps = make(map[curriculum.LessonID]*SolutionRevealer)
	s.restoredHints = map[string]int{}
	s.restoredSteps = map[string]int{}
	s.current = s.catalog.First()
	s.ready = false
	s.lastQuery = ""
	s.lastResult = nil
	s.persist(ctx)
}

// LastQuery returns the most recent query run in the active lesson.
func (s *Session) LastQuery() (string, bool) {
	return s.lastQuery, s.lastQuery != ""
}

// LastResult returns the most recent successful result in the active
// lesson.
func (s *Session) LastResult() (Result, bool) {
	if s.lastResult == nil {
		return Result{}, false
	}
	return *s.lastResult, true
}

// ExplainLast explains the execution order of the learner's most
// recent query. Falls back to the lesson's reference query when
// nothing has been run yet, reporting usedReference.
func (s *Session) ExplainLast() (steps []ExecutionStep, usedReference bool) {
	if s.lastQuery != "" {
		return ExplainOrder(s.lastQuery), false
	}
	return ExplainOrder(s.Current().Answer), true
}

// SaveError returns the most recent persistence failure, wrapped in
// ErrProgressUnavailable, or nil. The session keeps running in memory
// when saving fails; front-ends surface this as a warning.
func (s *Session) SaveError() error {
	return s.saveErr
}

// LessonStatus is one lesson's line in the progress summary.
type LessonStatus struct {
	ID        curriculum.LessonID
	Title     string
	Completed bool
	Current   bool
}

// PhaseSummary aggregates one phase in the progress summary.
type PhaseSummary struct {
	Number  int
	Title   string
	Done    int
	Total   int
	Lessons []LessonStatus
}

// Summary is a full progress report for either front-end to render.
type Summary struct {
	Current curriculum.LessonID
	Done    int
	Total   int
	Phases  []PhaseSummary
}

// Summarize builds the progress report.
func (s *Session) Summarize() Summary {
	sum := Summary{
		Current: s.current,
		Total:   s.catalog.Total(),
	}
	for _, p := range s.catalog.Phases() {
		ps := PhaseSummary{Number: p.Number, Title: p.Title, Total: len(p.Lessons)}
		for _, l := range p.Lessons {
			done := s.completed[l.ID]
			if done {
				ps.Done++
				sum.Done++
			}
			ps.Lessons = append(ps.Lessons, LessonStatus{
				ID:        l.ID,
				Title:     l.Title,
				Completed: done,
				Current:   l.ID == s.current,
			})
		}
		sum.Phases = append(sum.Phases, ps)
	}
	return sum
}

// Finished reports whether every lesson has been completed.
func (s *Session) Finished() bool {
	return len(s.completed) == s.catalog.Total()
}

func (s *Session) hintSeq(id curriculum.LessonID) *HintSequencer {
	if seq, ok := s.hints[id]; ok {
		return seq
	}
	lesson, _ := s.catalog.Lesson(id)
	seq := NewHintSequencer(lesson)
	if used, ok := s.restoredHints[id.String()]; ok {
		seq.Restore(used)
	}
	s.hints[id] = seq
	return seq
}

func (s *Session) stepSeq(id curriculum.LessonID) *SolutionRevealer {
	if rev, ok := s.steps[id]; ok {
		return rev
	}
	lesson, _ := s.catalog.Lesson(id)
	rev := NewSolutionRevealer(lesson)
	if revealed, ok := s.restoredSteps[id.String()]; ok {
		rev.Restore(revealed)
	}
	s.steps[id] = rev
	return rev
}

// persist writes the current snapshot, remembering (but not
// returning) failures.
func (s *Session) persist(ctx context.Context) {
	if s.store == nil {
		return
	}

	snap := Snapshot{
		Version:    s.catalog.Version(),
		Current:    s.current,
		HintCounts: map[string]int{},
		StepCounts: map[string]int{},
	}
	for id := range s.completed {
		snap.Completed = append(snap.Completed, id)
	}
	for id, seq := range s.hints {
		if seq.Used() > 0 {
			snap.HintCounts[id.String()] = seq.Used()
		}
	}
	for id, used := range s.restoredHints {
		if _, live := snap.HintCounts[id]; !live && used > 0 {
			snap.HintCounts[id] = used
		}
	}
	for id, rev := range s.steps {
		if rev.Revealed() > 0 {
			snap.StepCounts[id.String()] = rev.Revealed()
		}
	}
	for id, revealed := range s.restoredSteps {
		if _, live := snap.StepCounts[id]; !live && revealed > 0 {
			snap.StepCounts[id] = revealed
		}
	}

	if err := s.store.Save(ctx, snap); err != nil {
		s.saveErr = fmt.Errorf("%w: %v", ErrProgressUnavailable, err)
		return
	}
	s.saveErr = nil
}
