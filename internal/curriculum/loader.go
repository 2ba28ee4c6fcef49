package curriculum

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed curriculum.json
var curriculumJSON []byte

// Document mirrors the JSON layout of the curriculum file.
type Document struct {
	Version string          `json:"version"`
	Phases  []PhaseDocument `json:"phases"`
}

// PhaseDocument is one phase entry in the curriculum file.
type PhaseDocument struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Lessons     []LessonDocument `json:"lessons"`
}

// LessonDocument is one lesson entry in the curriculum file.
type LessonDocument struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Concept   string             `json:"concept"`
	Challenge string             `json:"challenge"`
	Answer    string             `json:"answer"`
	FollowUp  string             `json:"follow_up,omitempty"`
	Ordered   bool               `json:"ordered,omitempty"`
	Predicate *PredicateDocument `json:"predicate,omitempty"`
	Hints     []HintDocument     `json:"hints"`
	Steps     []StepDocument     `json:"steps"`
}

// HintDocument is one tagged hint entry.
type HintDocument struct {
	Stage string `json:"stage"`
	Text  string `json:"text"`
}

// StepDocument is one incremental solution step.
type StepDocument struct {
	SQL  string `json:"sql"`
	Note string `json:"note,omitempty"`
}

// PredicateDocument names a lesson-specific acceptance predicate.
type PredicateDocument struct {
	Name   string `json:"name"`
	Column string `json:"column"`
}

// Load parses and validates the embedded curriculum document and builds
// the catalog.
func Load() (*Catalog, error) {
	return loadDocument(curriculumJSON)
}

// Parse builds a catalog from an external curriculum document. Same
// validation as Load.
func Parse(raw []byte) (*Catalog, error) {
	return loadDocument(raw)
}

func loadDocument(raw []byte) (*Catalog, error) {
	if err := validateDocument(raw); err != nil {
		return nil, fmt.Errorf("curriculum document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse curriculum document: %w", err)
	}

	phases := make([]Phase, 0, len(doc.Phases))
	for _, pd := range doc.Phases {
		phase := Phase{
			Number:      pd.ID,
			Title:       pd.Title,
			Description: pd.Description,
		}
		for _, ld := range pd.Lessons {
			lesson, err := convertLesson(ld)
			if err != nil {
				return nil, err
			}
			phase.Lessons = append(phase.Lessons, lesson)
		}
		phases = append(phases, phase)
	}

	return buildCatalog(doc.Version, phases)
}

func convertLesson(ld LessonDocument) (Lesson, error) {
	id, err := ParseLessonID(ld.ID)
	if err != nil {
		return Lesson{}, err
	}

	lesson := Lesson{
		ID:        id,
		Title:     ld.Title,
		Concept:   ld.Concept,
		Challenge: ld.Challenge,
		Answer:    ld.Answer,
		FollowUp:  ld.FollowUp,
		Ordered:   ld.Ordered,
	}

	if ld.Predicate != nil {
		lesson.Predicate = &Predicate{
			Name:   ld.Predicate.Name,
			Column: ld.Predicate.Column,
		}
	}

	for _, h := range ld.Hints {
		lesson.Hints = append(lesson.Hints, Hint{
			Stage: HintStage(h.Stage),
			Text:  h.Text,
		})
	}
	for _, s := range ld.Steps {
		lesson.Steps = append(lesson.Steps, Step{SQL: s.SQL, Note: s.Note})
	}

	return lesson, nil
}
