package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/BTECHK/sql-coach/internal/ui/theme"
)

func (l *LessonScreen) View(width, height int) string {
	if l.congrats {
		return renderCongrats(width, height)
	}

	cw := width - 4
	if cw < 40 {
		cw = 40
	}

	var sections []string
	sections = append(sections, l.renderChallenge(cw))
	sections = append(sections, l.renderEditor(cw))

	if out := l.renderOutcome(cw); out != "" {
		sections = append(sections, out)
	}
	if aids := l.renderAids(cw); aids != "" {
		sections = append(sections, aids)
	}
	if l.status != "" {
		sections = append(sections, theme.Hint.Render("  "+l.status))
	}

	return strings.Join(sections, "\n")
}

func (l *LessonScreen) renderChallenge(width int) string {
	cur := l.sess.Current()

	title := theme.Selected.Render(fmt.Sprintf("%s  %s", cur.ID, cur.Title))
	concept := theme.Hint.Render(cur.Concept)
	challenge := theme.Body.Render(cur.Challenge)

	body := title + "\n" + concept + "\n\n" + challenge
	if l.sess.Completed(cur.ID) {
		body = title + "  " + theme.Correct.Render("✔ solved") + "\n" + concept + "\n\n" + challenge
	}

	return theme.Card.Width(width).Render(body)
}

func (l *LessonScreen) renderEditor(width int) string {
	label := theme.Hint.Render("SQL (Ctrl+R to run)")
	return theme.Card.Width(width).Render(label + "\n" + l.input.View())
}

func (l *LessonScreen) renderOutcome(width int) string {
	if l.verdict == verdictNone {
		return ""
	}

	var b strings.Builder

	switch l.verdict {
	case verdictCorrect:
		b.WriteString(theme.Correct.Render("✔ Correct!"))
		if l.followUp != "" {
			b.WriteString("\n" + theme.Hint.Render("Follow-up: "+l.followUp))
		}
	case verdictIncorrect:
		b.WriteString(theme.Incorrect.Render("✘ Not quite."))
		if l.reason != "" {
			b.WriteString(" " + theme.Body.Render(l.reason))
		}
	case verdictError:
		b.WriteString(theme.Incorrect.Render("✘ Query failed:"))
	}

	if l.note != "" {
		b.WriteString("\n" + theme.Hint.Render("Note: "+l.note))
	}

	if l.output != "" {
		b.WriteString("\n" + theme.Body.Render(l.output))
	}

	if l.review != nil {
		b.WriteString("\n" + theme.Selected.Render("Coach: ") +
			theme.Body.Render(l.review.Diagnosis) + "\n" +
			theme.Hint.Render(l.review.Nudge))
	}

	return theme.Card.Width(width).Render(b.String())
}

// renderAids renders hints, solution steps, the full answer, and the
// execution-order explainer, whichever are active.
func (l *LessonScreen) renderAids(width int) string {
	var parts []string

	if len(l.hints) > 0 {
		var b strings.Builder
		b.WriteString(theme.Selected.Render("Hints"))
		for i, h := range l.hints {
			b.WriteString(fmt.Sprintf("\n%s %s",
				theme.Hint.Render(fmt.Sprintf("%d.", i+1)),
				theme.Body.Render(h.Text)))
		}
		parts = append(parts, b.String())
	}

	if len(l.steps) > 0 {
		var b strings.Builder
		b.WriteString(theme.Selected.Render("Solution so far"))
		last := l.steps[len(l.steps)-1]
		b.WriteString("\n" + theme.Code.Render(last.SQL))
		if last.Note != "" {
			b.WriteString("\n" + theme.Hint.Render(last.Note))
		}
		parts = append(parts, b.String())
	}

	if l.fullAnswer != "" {
		parts = append(parts,
			theme.Selected.Render("Reference answer")+"\n"+
				theme.Code.Render(l.fullAnswer))
	}

	if len(l.explain) > 0 {
		var b strings.Builder
		heading := "Execution order"
		if l.explainRef {
			heading = "Execution order (reference answer)"
		}
		b.WriteString(theme.Selected.Render(heading))
		for i, step := range l.explain {
			b.WriteString(fmt.Sprintf("\n%s %s — %s",
				theme.Hint.Render(fmt.Sprintf("%d.", i+1)),
				theme.Code.Render(step.Clause),
				theme.Body.Render(step.Rationale)))
		}
		parts = append(parts, b.String())
	}

	if len(parts) == 0 {
		return ""
	}
	return theme.Card.Width(width).Render(strings.Join(parts, "\n\n"))
}

func renderCongrats(width, height int) string {
	msg := theme.Title.Render("🎉 Curriculum complete!") + "\n\n" +
		theme.Body.Render("You worked through every lesson, from SELECT to CTEs\nand window functions. The dataset is still yours to explore\nin the REPL: sqlcoach repl") + "\n\n" +
		theme.Hint.Render("Esc to return home")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(msg)
}
