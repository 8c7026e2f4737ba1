package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorNeonPurple = lipgloss.Color("#bd93f9") // Dracula Purple
	ColorNeonPink   = lipgloss.Color("#ff79c6") // Dracula Pink
	ColorNeonCyan   = lipgloss.Color("#8be9fd") // Dracula Cyan
	ColorSuccess    = lipgloss.Color("#50fa7b") // Dracula Green
	ColorError      = lipgloss.Color("#ff5555") // Dracula Red
	ColorWarning    = lipgloss.Color("#ffb86c") // Dracula Orange
	ColorText       = lipgloss.AdaptiveColor{Light: "#282a36", Dark: "#f8f8f2"}
	ColorLightGray  = lipgloss.AdaptiveColor{Light: "#44475a", Dark: "#bfbfbf"}
	ColorGray       = lipgloss.Color("#6272a4") // Dracula Comment
	ColorBorder     = lipgloss.Color("#44475a") // Dracula Selection

	// Styles
	AppStyle = lipgloss.NewStyle().
			Padding(DefaultPaddingY, DefaultPaddingX).
			Foreground(ColorText)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorNeonPurple).
			Bold(true).
			Padding(DefaultPaddingY, DefaultPaddingX).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorNeonPurple).
			BorderBottom(true)

	// Source and load time in the header
	StatsStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(DefaultPaddingY, DefaultPaddingX)

	AxisStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	AxisLabelStyle = lipgloss.NewStyle().
			Foreground(ColorLightGray)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(DefaultPaddingY, DefaultPaddingX)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorLightGray).
			Padding(DefaultPaddingY, DefaultPaddingX)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// Settings tabs
	TabStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ColorNeonPink).
			Bold(true).
			Underline(true).
			Padding(0, 1)
)
