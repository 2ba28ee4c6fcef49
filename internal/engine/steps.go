package engine

import "github.com/BTECHK/sql-coach/internal/curriculum"

// SolutionRevealer serves a lesson's reference solution one increment
// at a time. Each step is a longer SQL fragment than the last, so the
// learner sees the query grow instead of receiving it whole.
type SolutionRevealer struct {
	steps  []curriculum.Step
	answer string
	next   int
}

// NewSolutionRevealer returns a revealer positioned before the
// lesson's first step.
func NewSolutionRevealer(lesson curriculum.Lesson) *SolutionRevealer {
	return &SolutionRevealer{steps: lesson.Steps, answer: lesson.Answer}
}

// Next returns the next unrevealed step. Once all steps are out it
// returns ErrStepsExhausted and stays there.
func (r *SolutionRevealer) Next() (curriculum.Step, error) {
	if r.next >= len(r.steps) {
		return curriculum.Step{}, ErrStepsExhausted
	}
	step := r.steps[r.next]
	r.next++
	return step, nil
}

// Revealed returns how many steps have been served.
func (r *SolutionRevealer) Revealed() int {
	return r.next
}

// Remaining returns how many steps are left.
func (r *SolutionRevealer) Remaining() int {
	return len(r.steps) - r.next
}

// FullAnswer returns the complete reference query without advancing
// the step position.
func (r *SolutionRevealer) FullAnswer() string {
	return r.answer
}

// Reset rewinds to before the first step.
func (r *SolutionRevealer) Reset() {
	r.next = 0
}

// Restore positions the revealer as if revealed steps had already been
// served, clamped to the lesson's step count.
func (r *SolutionRevealer) Restore(revealed int) {
	if revealed < 0 {
		revealed = 0
	}
	if revealed > len(r.steps) {
		revealed = len(r.steps)
	}
	r.next = revealed
}
