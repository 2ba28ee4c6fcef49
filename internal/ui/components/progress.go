package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/BTECHK/sql-coach/internal/ui/theme"
)

// ProgressBar is a horizontal completion bar with an optional label
// and percentage readout.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a progress bar sized to width cells total.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the bar.
func (p ProgressBar) View() string {
	var out string
	if p.Label != "" {
		out = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	barWidth := p.Width - lipgloss.Width(out)
	if p.ShowPercent {
		barWidth -= 6 // room for "  100%"
	}
	if barWidth < 4 {
		barWidth = 4
	}

	filled := min(int(float64(barWidth)*p.Percent), barWidth)
	if filled < 0 {
		filled = 0
	}

	out += theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	out += theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		out += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}
	return out
}
