package log

import (
	"charm-mint-tui/helpers"
	"charm-mint-tui/styles"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// Height returns how many log lines fit under the landing page. The panel
// takes at most a third of the screen.
func Height(screenHeight int) int {
	// header panel, nav bar, panel title and borders
	const reserved = 10
	available := helpers.Max(3, screenHeight-reserved)
	return helpers.Min(available, helpers.Max(3, helpers.Min(screenHeight/3, 12)))
}

// Render renders the log panel
func Render(width, height int, ready bool, spinnerView string, vp viewport.Model) string {
	title := styles.TitleStyle.Render("Log")

	vp.Height = Height(height)

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(helpers.Max(0, width-2))

	if !ready {
		return border.Render(title + "\n\n" + "initializing...\n" + spinnerView)
	}

	if vp.TotalLineCount() > vp.Height {
		title += styles.MutedStyle.Render(fmt.Sprintf(" [%d%%]", int(vp.ScrollPercent()*100)))
	}
	return border.Render(title + "\n\n" + vp.View())
}
