package home

import (
	"charm.land/lipgloss/v2"

	"github.com/BTECHK/sql-coach/internal/ui/theme"
)

const bannerArt = `
 ███████╗ ██████╗ ██╗      ██████╗ ██████╗  █████╗  ██████╗██╗  ██╗
 ██╔════╝██╔═══██╗██║     ██╔════╝██╔═══██╗██╔══██╗██╔════╝██║  ██║
 ███████╗██║   ██║██║     ██║     ██║   ██║███████║██║     ███████║
 ╚════██║██║▄▄ ██║██║     ██║     ██║   ██║██╔══██║██║     ██╔══██║
 ███████║╚██████╔╝███████╗╚██████╗╚██████╔╝██║  ██║╚██████╗██║  ██║
 ╚══════╝ ╚══▀▀═╝ ╚══════╝ ╚═════╝ ╚═════╝ ╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝`

const bannerCompact = "S Q L C O A C H"

// renderBanner returns the SQLCOACH banner styled in the primary
// color, centered. Uses a compact fallback for narrow terminals.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Width(width).
		Align(lipgloss.Center)

	if width < 70 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
