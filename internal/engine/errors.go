package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by session operations. None of them are
// fatal to the session: callers report them and continue.
var (
	// ErrUnknownLesson is returned when a lesson id does not exist in
	// the catalog.
	ErrUnknownLesson = errors.New("unknown lesson")

	// ErrEndOfCurriculum is returned when advancing past the final
	// lesson.
	ErrEndOfCurriculum = errors.New("end of curriculum")

	// ErrNoMoreHints is returned once a lesson's hints are exhausted.
	// Repeated requests keep returning it without changing state.
	ErrNoMoreHints = errors.New("no more hints")

	// ErrStepsExhausted is returned once the staged solution is fully
	// revealed.
	ErrStepsExhausted = errors.New("solution fully revealed")

	// ErrProgressUnavailable marks progress persistence failures. The
	// session continues in memory when it occurs.
	ErrProgressUnavailable = errors.New("progress store unavailable")
)

// ExecutionError wraps a database error from running learner SQL. The
// learner's query itself failed; the session is unaffected.
type ExecutionError struct {
	Query string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
