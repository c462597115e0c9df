package tui

import "github.com/charmbracelet/lipgloss"

// FrankenPanel color palette
var (
	ColorAccent = lipgloss.Color("#8BE9FD") // Cyan for accents
	ColorDim    = lipgloss.Color("#6272A4") // Muted blue/grey
	ColorDark   = lipgloss.Color("#282A36") // Dark background elements
	ColorText   = lipgloss.Color("#F8F8F2") // Primary text
	ColorBad    = lipgloss.Color("#FF5555") // Errors, suspended sites
	ColorGood   = lipgloss.Color("#50FA7B") // Active sites
	ColorWarn   = lipgloss.Color("#F1FA8C") // Pending sites
	ColorMuted  = lipgloss.Color("#6c757d") // Inactive sites, secondary text
)

// Styles
var (
	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorDim).
			Italic(true)

	// Status indicators
	StyleStatusActive    = lipgloss.NewStyle().Foreground(ColorGood).Bold(true)
	StyleStatusPending   = lipgloss.NewStyle().Foreground(ColorWarn)
	StyleStatusInactive  = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleStatusSuspended = lipgloss.NewStyle().Foreground(ColorBad).Bold(true)

	StyleError = lipgloss.NewStyle().Foreground(ColorBad)

	StyleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 1).
			Margin(0, 1)

	// App container
	StyleApp = lipgloss.NewStyle().Margin(1, 2)

	// Top bar / menu styles
	StyleTopBar = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(ColorDim).
			Padding(0, 1).
			MarginBottom(1)

	StyleMenuItem = lipgloss.NewStyle().
			Foreground(ColorDim).
			Padding(0, 1)

	StyleMenuItemActive = lipgloss.NewStyle().
				Foreground(ColorDark).
				Background(ColorAccent).
				Bold(true).
				Padding(0, 1)

	StyleStatusLine = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	StyleInputPrompt = lipgloss.NewStyle().Foreground(ColorAccent)
)

// statusStyle maps a site status to its display style
func statusStyle(status string) lipgloss.Style {
	switch status {
	case "active":
		return StyleStatusActive
	case "pending":
		return StyleStatusPending
	case "suspended":
		return StyleStatusSuspended
	default:
		return StyleStatusInactive
	}
}
