package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/BTECHK/sql-coach/internal/coach"
	"github.com/BTECHK/sql-coach/internal/dataset"
	"github.com/BTECHK/sql-coach/internal/engine"
	"github.com/BTECHK/sql-coach/internal/router"
	"github.com/BTECHK/sql-coach/internal/screen"
	"github.com/BTECHK/sql-coach/internal/screens/browse"
	"github.com/BTECHK/sql-coach/internal/screens/lesson"
	"github.com/BTECHK/sql-coach/internal/screens/progress"
	"github.com/BTECHK/sql-coach/internal/ui/components"
	"github.com/BTECHK/sql-coach/internal/ui/theme"
)

// HomeScreen is the entry screen: welcome banner plus navigation menu.
type HomeScreen struct {
	session *engine.Session
	menu    components.Menu
	warning string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. warning carries a non-fatal startup
// problem (e.g. progress could not be loaded) to surface to the user.
func New(sess *engine.Session, coachSvc *coach.Service, ds *dataset.Dataset, warning string) *HomeScreen {
	cur := sess.Current()
	continueLabel := fmt.Sprintf("CONTINUE — %s %s", cur.ID, cur.Title)
	if sess.Finished() {
		continueLabel = "REVIEW LESSONS"
	}

	items := []components.MenuItem{
		{Label: continueLabel, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: lesson.New(sess, coachSvc)}
			}
		}},
		{Label: "PROGRESS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: progress.New(sess, coachSvc)}
			}
		}},
		{Label: "DATASET SCHEMA", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: browse.New(ds)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		session: sess,
		menu:    components.NewMenu(items),
		warning: warning,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	sum := h.session.Summarize()

	var sections []string

	sections = append(sections, renderBanner(width))

	tagline := theme.Subtitle.Width(width).Render(
		"Learn SQL hands-on against a small advertising dataset.")
	sections = append(sections, tagline)

	bar := components.NewProgressBar(
		fmt.Sprintf("Progress  %d/%d", sum.Done, sum.Total),
		percent(sum.Done, sum.Total), true, min(width-8, 60))
	sections = append(sections, lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(bar.View()))

	sections = append(sections, lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(h.menu.View()))

	if h.warning != "" {
		sections = append(sections, theme.Hint.Width(width).
			Align(lipgloss.Center).
			Render("⚠ "+h.warning))
	}

	content := strings.Join(sections, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Left, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func percent(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}
