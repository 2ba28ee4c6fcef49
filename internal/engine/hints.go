package engine

import "github.com/BTECHK/sql-coach/internal/curriculum"

// HintSequencer walks a lesson's hints in stage order, one per request.
// After the last hint every further request returns ErrNoMoreHints
// without changing state.
type HintSequencer struct {
	hints []curriculum.Hint
	next  int
}

// NewHintSequencer returns a sequencer positioned before the lesson's
// first hint.
func NewHintSequencer(lesson curriculum.Lesson) *HintSequencer {
	return &HintSequencer{hints: lesson.Hints}
}

// Next returns the next unrevealed hint.
func (h *HintSequencer) Next() (curriculum.Hint, error) {
	if h.next >= len(h.hints) {
		return curriculum.Hint{}, ErrNoMoreHints
	}
	hint := h.hints[h.next]
	h.next++
	return hint, nil
}

// Used returns how many hints have been revealed.
func (h *HintSequencer) Used() int {
	return h.next
}

// Remaining returns how many hints are left.
func (h *HintSequencer) Remaining() int {
	return len(h.hints) - h.next
}

// Reset rewinds to before the first hint.
func (h *HintSequencer) Reset() {
	h.next = 0
}

// Restore positions the sequencer as if used hints had already been
// revealed, clamped to the lesson's hint count. Used when resuming a
// persisted session.
func (h *HintSequencer) Restore(used int) {
	if used < 0 {
		used = 0
	}
	if used > len(h.hints) {
		used = len(h.hints)
	}
	h.next = used
}
