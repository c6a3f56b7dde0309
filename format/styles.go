package format

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#8B5CF6")
	colorAccent  = lipgloss.Color("#06B6D4")
	colorMuted   = lipgloss.Color("#6B7280")
	colorError   = lipgloss.Color("#EF4444")
)

type styles struct {
	heading lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	muted   lipgloss.Style
	typ     lipgloss.Style
	err     lipgloss.Style
}

func newStyles(color bool) styles {
	plain := lipgloss.NewStyle()
	if !color {
		return styles{
			heading: plain,
			header:  plain.Padding(0, 1),
			cell:    plain.Padding(0, 1),
			muted:   plain,
			typ:     plain,
			err:     plain,
		}
	}
	return styles{
		heading: plain.Foreground(colorPrimary).Bold(true),
		header:  plain.Foreground(colorPrimary).Bold(true).Padding(0, 1),
		cell:    plain.Padding(0, 1),
		muted:   plain.Foreground(colorMuted),
		typ:     plain.Foreground(colorAccent),
		err:     plain.Foreground(colorError).Bold(true),
	}
}

// ErrorStyle renders command errors on the terminal.
func ErrorStyle(color bool) lipgloss.Style {
	return newStyles(color).err
}
