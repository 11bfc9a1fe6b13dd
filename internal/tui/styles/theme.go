package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette, the subset the watch view uses
var (
	Base     = lipgloss.Color("#1e1e2e")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Surface2 = lipgloss.Color("#585b70")
	Subtext0 = lipgloss.Color("#a6adc8")
	Subtext1 = lipgloss.Color("#bac2de")
	Text     = lipgloss.Color("#cdd6f4")

	Green  = lipgloss.Color("#a6e3a1")
	Yellow = lipgloss.Color("#f9e2af")
	Red    = lipgloss.Color("#f38ba8")
	Mauve  = lipgloss.Color("#cba6f7")
	Peach  = lipgloss.Color("#fab387")
	Blue   = lipgloss.Color("#89b4fa")
)

var (
	// Header styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Mauve).
			Background(Surface0).
			Padding(0, 1)

	// Watch state styles
	WatchingStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	PausedStyle = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)

	// NewPortStyle marks rows for ports that appeared recently
	NewPortStyle = lipgloss.NewStyle().
			Foreground(Green)

	// Content area styles
	ContentBorderStyle = lipgloss.NewStyle().
				BorderTop(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(Surface1)

	// Table styles
	TableBaseStyle = lipgloss.NewStyle().
			Foreground(Text).
			BorderForeground(Surface1).
			Align(lipgloss.Left)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Subtext1)

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Red)

	// Info styles
	InfoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Mauve)
)
