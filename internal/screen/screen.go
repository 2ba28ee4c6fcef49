package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/BTECHK/sql-coach/internal/ui/layout"
)

// Screen is one full view managed by the router: the home menu, a
// lesson, the progress list, the dataset browser.
type Screen interface {
	// Init runs once when the screen lands on the stack.
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep showing.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area; the header and footer are drawn
	// around it by the app model.
	View(width, height int) string

	// Title labels the screen in the header bar.
	Title() string
}

// KeyHintProvider lets a screen override the default footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
