package report

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

var (
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	CountStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	RemovedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

const (
	SymbolCheck  = "✓"
	SymbolBullet = "•"
)
