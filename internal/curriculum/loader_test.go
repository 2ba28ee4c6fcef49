package curriculum

import (
	"strings"
	"testing"
)

const minimalDoc = `{
  "version": "1.0.0",
  "phases": [
    {
      "id": 1,
      "title": "Test Phase",
      "description": "",
      "lessons": [
        {
          "id": "1.1",
          "title": "Test Lesson",
          "concept": "c",
          "challenge": "ch",
          "answer": "SELECT 1",
          "hints": [{"stage": "approach", "text": "h"}],
          "steps": [{"sql": "SELECT 1;"}]
        }
      ]
    }
  ]
}`

func TestLoadDocumentMinimal(t *testing.T) {
	c, err := loadDocument([]byte(minimalDoc))
	if err != nil {
		t.Fatalf("loadDocument() error: %v", err)
	}
	if c.Total() != 1 {
		t.Errorf("Total() = %d, want 1", c.Total())
	}
	l, ok := c.Lesson(LessonID{Phase: 1, Index: 1})
	if !ok {
		t.Fatal("lesson 1.1 not found")
	}
	if l.Answer != "SELECT 1" {
		t.Errorf("Answer = %q", l.Answer)
	}
}

func TestLoadDocumentRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"version": `},
		{"missing version", strings.Replace(minimalDoc, `"version": "1.0.0",`, "", 1)},
		{"bad version format", strings.Replace(minimalDoc, `"1.0.0"`, `"v1"`, 1)},
		{"bad lesson id", strings.Replace(minimalDoc, `"id": "1.1"`, `"id": "one"`, 1)},
		{"unknown hint stage", strings.Replace(minimalDoc, `"stage": "approach"`, `"stage": "nudge"`, 1)},
		{"empty hints", strings.Replace(minimalDoc, `"hints": [{"stage": "approach", "text": "h"}],`, `"hints": [],`, 1)},
		{"empty steps", strings.Replace(minimalDoc, `"steps": [{"sql": "SELECT 1;"}]`, `"steps": []`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadDocument([]byte(tt.doc)); err == nil {
				t.Error("loadDocument() accepted invalid document")
			}
		})
	}
}

func TestLoadDocumentRejectsMisfiledLesson(t *testing.T) {
	doc := strings.Replace(minimalDoc, `"id": "1.1"`, `"id": "2.1"`, 1)
	_, err := loadDocument([]byte(doc))
	if err == nil {
		t.Fatal("loadDocument() accepted a lesson filed under the wrong phase")
	}
	if !strings.Contains(err.Error(), "phase") {
		t.Errorf("error = %v, want mention of phase mismatch", err)
	}
}

func TestLoadDocumentRejectsDuplicateIDs(t *testing.T) {
	lesson := `{
          "id": "1.1",
          "title": "Test Lesson",
          "concept": "c",
          "challenge": "ch",
          "answer": "SELECT 1",
          "hints": [{"stage": "approach", "text": "h"}],
          "steps": [{"sql": "SELECT 1;"}]
        }`
	doc := strings.Replace(minimalDoc, lesson, lesson+",\n"+lesson, 1)
	if !strings.Contains(doc, `"id": "1.1"`) {
		t.Fatal("test setup: lesson block not found")
	}
	_, err := loadDocument([]byte(doc))
	if err == nil {
		t.Fatal("loadDocument() accepted duplicate lesson ids")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error = %v, want duplicate id error", err)
	}
}

func TestLoadDocumentParsesPredicate(t *testing.T) {
	doc := strings.Replace(minimalDoc,
		`"answer": "SELECT 1",`,
		`"answer": "SELECT 1", "predicate": {"name": "column-non-decreasing", "column": "date"},`, 1)
	c, err := loadDocument([]byte(doc))
	if err != nil {
		t.Fatalf("loadDocument() error: %v", err)
	}
	l, _ := c.Lesson(LessonID{Phase: 1, Index: 1})
	if l.Predicate == nil {
		t.Fatal("Predicate = nil")
	}
	if l.Predicate.Name != "column-non-decreasing" || l.Predicate.Column != "date" {
		t.Errorf("Predicate = %+v", *l.Predicate)
	}
}

func TestParseLessonID(t *testing.T) {
	tests := []struct {
		in      string
		want    LessonID
		wantErr bool
	}{
		{"1.1", LessonID{1, 1}, false},
		{" 4.3 ", LessonID{4, 3}, false},
		{"10.2", LessonID{10, 2}, false},
		{"3", LessonID{}, true},
		{"a.b", LessonID{}, true},
		{"", LessonID{}, true},
	}
	for _, tt := range tests {
		got, err := ParseLessonID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLessonID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseLessonID(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
