package tui

import "github.com/charmbracelet/lipgloss"

// Palette. Status colours match the badges used on every screen.
var (
	colorBrand    = lipgloss.Color("#14B8A6")
	colorInk      = lipgloss.Color("#E2E8F0")
	colorDim      = lipgloss.Color("#7C8799")
	colorEdge     = lipgloss.Color("#3B4252")
	colorValue    = lipgloss.Color("#A78BFA")
	colorOK       = lipgloss.Color("#22C55E")
	colorOverdue  = lipgloss.Color("#EF4444")
	colorToday    = lipgloss.Color("#F59E0B")
	colorUpcoming = lipgloss.Color("#38BDF8")
)

var (
	brandStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)

	tabOnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBrand).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorBrand).
			Padding(0, 1)

	tabOffStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorEdge).
			Padding(0, 1)

	focusBoxStyle = boxStyle.
			BorderForeground(colorBrand).
			Padding(1, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorEdge).
			Padding(0, 3).
			Align(lipgloss.Center)

	overdueBadgeStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorOverdue)
	todayBadgeStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorToday)
	upcomingBadgeStyle = lipgloss.NewStyle().Bold(true).Foreground(colorUpcoming)

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorInk)
	taglineStyle = lipgloss.NewStyle().Italic(true).Foreground(colorDim)
	valueStyle   = lipgloss.NewStyle().Foreground(colorValue)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	okStyle      = lipgloss.NewStyle().Foreground(colorOK)
	errStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorOverdue)

	topBarStyle    = lipgloss.NewStyle().Padding(0, 1)
	bottomBarStyle = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)

	cursorRowStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	rowStyle       = lipgloss.NewStyle().Foreground(colorInk)
)
