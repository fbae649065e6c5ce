package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#8BC34A")
	destructive = lipgloss.Color("#e53935")
	warning     = lipgloss.Color("#FFC107")
	muted       = lipgloss.Color("#6b7785")
)

type styles struct {
	Title    lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Idle     lipgloss.Style
	Busy     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1).Width(22),
		Selected: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1).Width(22),
		Idle:     lipgloss.NewStyle(),
		Busy:     lipgloss.NewStyle().Foreground(warning),
		Success:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(destructive),
		Muted:    lipgloss.NewStyle().Foreground(muted),
	}
}
