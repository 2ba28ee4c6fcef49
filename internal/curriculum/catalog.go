package curriculum

import "fmt"

// Catalog holds the full curriculum with precomputed lookup indices.
// It is built once at startup and never mutated afterwards.
type Catalog struct {
	version string
	phases  []Phase
	lessons []Lesson
	byID    map[LessonID]int
}

// buildCatalog flattens phases into linear lesson order and builds the
// id index. It validates id uniqueness and hint stage ordering.
func buildCatalog(version string, phases []Phase) (*Catalog, error) {
	c := &Catalog{
		version: version,
		phases:  phases,
		byID:    make(map[LessonID]int),
	}

	for _, p := range phases {
		for _, l := range p.Lessons {
			if l.ID.Phase != p.Number {
				return nil, fmt.Errorf("lesson %s listed under phase %d", l.ID, p.Number)
			}
			if _, dup := c.byID[l.ID]; dup {
				return nil, fmt.Errorf("duplicate lesson id %s", l.ID)
			}
			prev := -1
			for _, h := range l.Hints {
				r := stageRank(h.Stage)
				if r < prev {
					return nil, fmt.Errorf("lesson %s: hint stages out of order", l.ID)
				}
				prev = r
			}
			c.byID[l.ID] = len(c.lessons)
			c.lessons = append(c.lessons, l)
		}
	}

	if len(c.lessons) == 0 {
		return nil, fmt.Errorf("curriculum has no lessons")
	}
	return c, nil
}

// Version returns the curriculum document version.
func (c *Catalog) Version() string {
	return c.version
}

// Phases returns all phases in curriculum order.
func (c *Catalog) Phases() []Phase {
	return c.phases
}

// Lessons returns all lessons in linear curriculum order.
func (c *Catalog) Lessons() []Lesson {
	return c.lessons
}

// Total returns the number of lessons.
func (c *Catalog) Total() int {
	return len(c.lessons)
}

// Lesson returns the lesson with the given id.
func (c *Catalog) Lesson(id LessonID) (Lesson, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Lesson{}, false
	}
	return c.lessons[i], true
}

// First returns the id of the first lesson.
func (c *Catalog) First() LessonID {
	return c.lessons[0].ID
}

// Next returns the id following id in curriculum order, or false when id
// is the last lesson (or unknown).
func (c *Catalog) Next(id LessonID) (LessonID, bool) {
	i, ok := c.byID[id]
	if !ok || i+1 >= len(c.lessons) {
		return LessonID{}, false
	}
	return c.lessons[i+1].ID, true
}

// Position returns the zero-based position of id in curriculum order,
// or -1 if unknown.
func (c *Catalog) Position(id LessonID) int {
	i, ok := c.byID[id]
	if !ok {
		return -1
	}
	return i
}

// PhaseOf returns the phase containing id.
func (c *Catalog) PhaseOf(id LessonID) (Phase, bool) {
	for _, p := range c.phases {
		if p.Number == id.Phase {
			return p, true
		}
	}
	return Phase{}, false
}
