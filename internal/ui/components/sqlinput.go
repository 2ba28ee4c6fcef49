package components

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// SQLInput wraps bubbles/textarea for multi-line SQL entry.
type SQLInput struct {
	Model textarea.Model
}

// NewSQLInput creates a new SQL editor area.
func NewSQLInput(width, height int) SQLInput {
	ta := textarea.New()
	ta.Placeholder = "SELECT ..."
	ta.ShowLineNumbers = false
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.Focus()
	return SQLInput{Model: ta}
}

// Init returns the initial command.
func (s SQLInput) Init() tea.Cmd {
	return s.Model.Focus()
}

// Update handles messages.
func (s SQLInput) Update(msg tea.Msg) (SQLInput, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the editor.
func (s SQLInput) View() string {
	return s.Model.View()
}

// Value returns the trimmed SQL text, without a trailing semicolon.
func (s SQLInput) Value() string {
	return strings.TrimSuffix(strings.TrimSpace(s.Model.Value()), ";")
}

// Empty reports whether the editor holds no SQL.
func (s SQLInput) Empty() bool {
	return s.Value() == ""
}

// Reset clears the editor.
func (s *SQLInput) Reset() {
	s.Model.Reset()
}

// SetSize resizes the editor.
func (s *SQLInput) SetSize(width, height int) {
	s.Model.SetWidth(width)
	s.Model.SetHeight(height)
}
