package browse

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/BTECHK/sql-coach/internal/dataset"
	"github.com/BTECHK/sql-coach/internal/screen"
	"github.com/BTECHK/sql-coach/internal/ui/layout"
	"github.com/BTECHK/sql-coach/internal/ui/theme"
)

// BrowseScreen shows the practice dataset: its tables, row counts,
// and per-table column detail.
type BrowseScreen struct {
	ds *dataset.Dataset

	tables   []dataset.Table
	columns  []dataset.Column
	selected int
	detail   bool
	errMsg   string
}

var _ screen.Screen = (*BrowseScreen)(nil)
var _ screen.KeyHintProvider = (*BrowseScreen)(nil)

// tablesLoadedMsg carries the table list from Init.
type tablesLoadedMsg struct {
	Tables []dataset.Table
	Err    error
}

// columnsLoadedMsg carries one table's columns.
type columnsLoadedMsg struct {
	Columns []dataset.Column
	Err     error
}

// New creates the dataset browser.
func New(ds *dataset.Dataset) *BrowseScreen {
	return &BrowseScreen{ds: ds}
}

func (b *BrowseScreen) Init() tea.Cmd {
	return func() tea.Msg {
		tables, err := b.ds.Tables(context.Background())
		return tablesLoadedMsg{Tables: tables, Err: err}
	}
}

func (b *BrowseScreen) Title() string {
	return "Dataset"
}

func (b *BrowseScreen) KeyHints() []layout.KeyHint {
	if b.detail {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to tables"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Columns"},
		{Key: "Esc", Description: "Home"},
	}
}

func (b *BrowseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tablesLoadedMsg:
		if msg.Err != nil {
			b.errMsg = msg.Err.Error()
			return b, nil
		}
		b.tables = msg.Tables
		return b, nil

	case columnsLoadedMsg:
		if msg.Err != nil {
			b.errMsg = msg.Err.Error()
			return b, nil
		}
		b.columns = msg.Columns
		b.detail = true
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if !b.detail && b.selected > 0 {
				b.selected--
			}
		case "down", "j":
			if !b.detail && b.selected < len(b.tables)-1 {
				b.selected++
			}
		case "enter":
			if b.detail {
				b.detail = false
				b.columns = nil
				return b, nil
			}
			if b.selected < 0 || b.selected >= len(b.tables) {
				return b, nil
			}
			name := b.tables[b.selected].Name
			return b, func() tea.Msg {
				cols, err := b.ds.Columns(context.Background(), name)
				return columnsLoadedMsg{Columns: cols, Err: err}
			}
		}
	}

	return b, nil
}

func (b *BrowseScreen) View(width, height int) string {
	cw := width - 4
	if cw < 40 {
		cw = 40
	}

	var body string
	switch {
	case b.errMsg != "":
		body = theme.Incorrect.Render(b.errMsg)
	case b.detail:
		body = b.renderColumns()
	default:
		body = b.renderTables()
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(0, 2).
		Render(theme.Card.Width(cw).Render(body))
}

func (b *BrowseScreen) renderTables() string {
	if len(b.tables) == 0 {
		return theme.Hint.Render("Loading tables…")
	}

	var s strings.Builder
	s.WriteString(theme.Selected.Render("Advertising dataset"))
	s.WriteString("\n")
	for i, t := range b.tables {
		line := fmt.Sprintf("%-24s %5d rows", t.Name, t.RowCount)
		if i == b.selected {
			s.WriteString("\n" + theme.Selected.Render("▸ "+line))
		} else {
			s.WriteString("\n" + theme.Unselected.Render("  "+line))
		}
	}
	return s.String()
}

func (b *BrowseScreen) renderColumns() string {
	table := b.tables[b.selected]

	var s strings.Builder
	s.WriteString(theme.Selected.Render(table.Name))
	s.WriteString("\n")
	for _, c := range b.columns {
		flags := ""
		if c.PrimaryKey {
			flags = "  PK"
		} else if c.NotNull {
			flags = "  NOT NULL"
		}
		s.WriteString(fmt.Sprintf("\n%s %s%s",
			theme.Body.Render(fmt.Sprintf("%-22s", c.Name)),
			theme.Code.Render(c.Type),
			theme.Hint.Render(flags)))
	}
	return s.String()
}
