package report

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // titles
	ColorSecondary = lipgloss.Color("#4ecdc4") // roots
	ColorAccent    = lipgloss.Color("#ffe66d") // codes
	ColorMuted     = lipgloss.Color("#666666") // labels
	ColorError     = lipgloss.Color("#e63946")
)

// Styles used by a styled Renderer.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	RootStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	CodeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)
