package curriculum

import (
	"fmt"
	"strconv"
	"strings"
)

// LessonID identifies a lesson by its phase number and position within
// the phase, rendered as "phase.index" (e.g. "3.2").
type LessonID struct {
	Phase int
	Index int
}

// ParseLessonID parses a "phase.index" string.
func ParseLessonID(s string) (LessonID, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ".", 2)
	if len(parts) != 2 {
		return LessonID{}, fmt.Errorf("invalid lesson id %q: want phase.index", s)
	}
	phase, err := strconv.Atoi(parts[0])
	if err != nil {
		return LessonID{}, fmt.Errorf("invalid lesson id %q: %w", s, err)
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil {
		return LessonID{}, fmt.Errorf("invalid lesson id %q: %w", s, err)
	}
	return LessonID{Phase: phase, Index: index}, nil
}

func (id LessonID) String() string {
	return fmt.Sprintf("%d.%d", id.Phase, id.Index)
}

// IsZero reports whether the id is the zero value (no lesson).
func (id LessonID) IsZero() bool {
	return id.Phase == 0 && id.Index == 0
}

// HintStage classifies a hint. Hints within a lesson are stored in stage
// order: clarifying question first, code last.
type HintStage string

const (
	StageClarifying HintStage = "clarifying-question"
	StageApproach   HintStage = "approach"
	StageConcept    HintStage = "concept"
	StageCode       HintStage = "code"
)

// Label returns a human-readable name for the stage.
func (s HintStage) Label() string {
	switch s {
	case StageClarifying:
		return "Clarifying question"
	case StageApproach:
		return "Approach"
	case StageConcept:
		return "Concept"
	case StageCode:
		return "Code"
	default:
		return string(s)
	}
}

// stageRank orders stages for catalog validation.
func stageRank(s HintStage) int {
	switch s {
	case StageClarifying:
		return 0
	case StageApproach:
		return 1
	case StageConcept:
		return 2
	case StageCode:
		return 3
	default:
		return 4
	}
}

// Hint is a single progressive-reveal hint.
type Hint struct {
	Stage HintStage
	Text  string
}

// Step is one increment of the staged solution reveal: a SQL fragment
// plus a short note on what the fragment adds.
type Step struct {
	SQL  string
	Note string
}

// Predicate names an alternative acceptance check for lessons whose
// correct answers are not a unique row set. The comparator falls back to
// plain result equality when Predicate is nil.
type Predicate struct {
	// Name selects the check. Supported: "column-non-decreasing".
	Name string
	// Column is the column the check applies to.
	Column string
}

// Lesson is one immutable curriculum unit.
type Lesson struct {
	ID        LessonID
	Title     string
	Concept   string
	Challenge string
	// Answer is the reference query; the comparator executes it to obtain
	// the expected result set.
	Answer   string
	FollowUp string
	// Ordered marks lessons whose concept concerns row ordering; their
	// results are compared order-sensitively.
	Ordered   bool
	Predicate *Predicate
	Hints     []Hint
	Steps     []Step
}

// Phase is a thematic group of lessons.
type Phase struct {
	Number      int
	Title       string
	Description string
	Lessons     []Lesson
}
