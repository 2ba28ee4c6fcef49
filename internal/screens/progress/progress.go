package progress

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/BTECHK/sql-coach/internal/coach"
	"github.com/BTECHK/sql-coach/internal/engine"
	"github.com/BTECHK/sql-coach/internal/router"
	"github.com/BTECHK/sql-coach/internal/screen"
	"github.com/BTECHK/sql-coach/internal/screens/lesson"
	"github.com/BTECHK/sql-coach/internal/ui/components"
	"github.com/BTECHK/sql-coach/internal/ui/layout"
	"github.com/BTECHK/sql-coach/internal/ui/theme"
)

// ProgressScreen lists every phase and lesson with completion marks.
// Selecting a lesson jumps the session there.
type ProgressScreen struct {
	sess     *engine.Session
	coachSvc *coach.Service

	summary  engine.Summary
	flat     []engine.LessonStatus
	selected int
	status   string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates the progress screen.
func New(sess *engine.Session, coachSvc *coach.Service) *ProgressScreen {
	p := &ProgressScreen{sess: sess, coachSvc: coachSvc}
	p.reload()
	return p
}

func (p *ProgressScreen) reload() {
	p.summary = p.sess.Summarize()
	p.flat = p.flat[:0]
	for _, ph := range p.summary.Phases {
		p.flat = append(p.flat, ph.Lessons...)
	}
	for i, ls := range p.flat {
		if ls.Current {
			p.selected = i
		}
	}
}

func (p *ProgressScreen) Init() tea.Cmd {
	return nil
}

func (p *ProgressScreen) Title() string {
	return "Progress"
}

func (p *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Go to lesson"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if p.selected > 0 {
			p.selected--
		}
	case "down", "j":
		if p.selected < len(p.flat)-1 {
			p.selected++
		}
	case "enter":
		if p.selected < 0 || p.selected >= len(p.flat) {
			return p, nil
		}
		target := p.flat[p.selected].ID
		if _, err := p.sess.Jump(context.Background(), target); err != nil {
			p.status = err.Error()
			return p, nil
		}
		return p, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: lesson.New(p.sess, p.coachSvc)}
		}
	}

	return p, nil
}

func (p *ProgressScreen) View(width, height int) string {
	cw := width - 4
	if cw < 40 {
		cw = 40
	}

	var sections []string

	bar := components.NewProgressBar(
		fmt.Sprintf("Overall  %d/%d", p.summary.Done, p.summary.Total),
		ratio(p.summary.Done, p.summary.Total), true, min(cw, 60))
	sections = append(sections, bar.View())

	idx := 0
	for _, ph := range p.summary.Phases {
		var b strings.Builder
		b.WriteString(theme.Selected.Render(
			fmt.Sprintf("Phase %d: %s", ph.Number, ph.Title)))
		b.WriteString(theme.Hint.Render(
			fmt.Sprintf("  (%d/%d)", ph.Done, ph.Total)))

		for _, ls := range ph.Lessons {
			mark := "  "
			if ls.Completed {
				mark = theme.Correct.Render("✔ ")
			}
			line := fmt.Sprintf("%s%s  %s", mark, ls.ID, ls.Title)
			if ls.Current {
				line += theme.Hint.Render("  ← current")
			}
			if idx == p.selected {
				b.WriteString("\n" + theme.Selected.Render("▸ "+line))
			} else {
				b.WriteString("\n" + theme.Unselected.Render("  "+line))
			}
			idx++
		}
		sections = append(sections, b.String())
	}

	if p.status != "" {
		sections = append(sections, theme.Hint.Render(p.status))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(0, 2).
		Render(content)
}

func ratio(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}
