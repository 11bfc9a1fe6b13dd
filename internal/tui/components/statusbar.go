package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/seriallab/go-serialdevice/internal/tui/styles"
)

// WatchStatus is everything the status bar needs to render one frame.
type WatchStatus struct {
	Paused      bool
	PortCount   int
	LastChange  string
	LastRefresh time.Time
	Interval    time.Duration
	Err         error
}

// StatusBar renders the single-line bar under the watch table: mode badge
// and title on the left, port count and refresh clock on the right, the most
// recent change or error in between.
type StatusBar struct {
	title string
	width int
}

func NewStatusBar(title string) *StatusBar {
	return &StatusBar{title: title}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) View(status WatchStatus) string {
	badge := styles.WatchingStyle.Render("● WATCHING")
	if status.Paused {
		badge = styles.PausedStyle.Render("⏸ PAUSED")
	}

	left := lipgloss.JoinHorizontal(lipgloss.Center,
		badge,
		lipgloss.NewStyle().Foreground(styles.Surface2).Render(" │ "),
		lipgloss.NewStyle().Foreground(styles.Text).Render(sb.title),
	)

	middle := ""
	switch {
	case status.Err != nil:
		middle = styles.ErrorStyle.Render(status.Err.Error())
	case status.LastChange != "":
		middle = lipgloss.NewStyle().Foreground(styles.Peach).Render(status.LastChange)
	}

	clock := ""
	if !status.LastRefresh.IsZero() {
		clock = status.LastRefresh.Format("15:04:05")
	}
	right := lipgloss.NewStyle().Foreground(styles.Subtext0).Render(
		fmt.Sprintf("%d ports · %s · every %s", status.PortCount, clock, status.Interval))

	// Pad the middle so left and right hug the edges.
	used := lipgloss.Width(left) + lipgloss.Width(middle) + lipgloss.Width(right)
	gap := sb.width - used - 2
	if gap < 2 {
		gap = 2
	}
	leftGap := gap / 2
	rightGap := gap - leftGap

	bar := lipgloss.JoinHorizontal(lipgloss.Center,
		left,
		lipgloss.NewStyle().Width(leftGap).Render(""),
		middle,
		lipgloss.NewStyle().Width(rightGap).Render(""),
		right,
	)

	return lipgloss.NewStyle().
		Background(styles.Surface0).
		Width(sb.width).
		Padding(0, 1).
		Render(bar)
}
