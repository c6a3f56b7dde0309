package explore

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#8B5CF6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorBgPanel = lipgloss.Color("#1E293B")
	colorText    = lipgloss.Color("#F8FAFC")
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorBgPanel).
			Foreground(colorText).
			Padding(0, 1)

	okStyle = lipgloss.NewStyle().
		Foreground(colorSuccess).
		Bold(true)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

func keyHint(key, description string) string {
	return helpKeyStyle.Render(key) + " " + helpDescStyle.Render(description)
}
