package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorSuccess = lipgloss.Color("34")  // Green
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

var (
	// DangerBoxStyle frames the banner shown before SQL runs against a database.
	DangerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorError).
			Padding(0, 2)

	DangerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorError)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// dangerBanner renders the warning shown by both approvers.
func dangerBanner(dbName string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		DangerTitleStyle.Render("DANGER: executing SQL against "+dbName),
		"",
		"Schema and data changes will be committed file by file.",
		MutedStyle.Render("A failing file is rolled back and the run stops."),
	)
	return DangerBoxStyle.Render(body)
}
