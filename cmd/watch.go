/*
Copyright © 2025 SerialLab <dev@seriallab.io>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	serialdevice "github.com/seriallab/go-serialdevice"
	"github.com/seriallab/go-serialdevice/internal/tui/components"
	"github.com/seriallab/go-serialdevice/internal/tui/keys"
	"github.com/seriallab/go-serialdevice/internal/tui/models"
	"github.com/seriallab/go-serialdevice/internal/tui/styles"
)

// newPortWindow is how long a freshly plugged-in port stays highlighted.
const newPortWindow = 5 * time.Second

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch serial ports appear and disappear in real time",
	Long: `Watch the host's serial ports with a real-time TUI display.

This command re-enumerates the serial ports on an interval and shows the
current set in a table. Features include:
- Freshly plugged-in ports highlighted for a few seconds
- A running summary of the last change (+added -removed)
- Pause and manual refresh
- Configurable refresh interval

Example usage:
  serialdevice watch
  serialdevice watch --interval 500ms
  serialdevice watch --usb`,
	Run: func(cmd *cobra.Command, args []string) {
		interval, _ := cmd.Flags().GetDuration("interval")
		usbOnly, _ := cmd.Flags().GetBool("usb")

		if err := runWatchTUI(interval, usbOnly); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationP("interval", "i", time.Second, "Refresh interval (default: 1s)")
	watchCmd.Flags().BoolP("usb", "u", false, "Only watch USB-backed ports")
}

// watchModel represents the Bubble Tea model for the watch command
type watchModel struct {
	*models.WatchModel
	table     *components.PortsTable
	statusBar *components.StatusBar
	help      help.Model
	keys      keys.WatchKeys
	interval  time.Duration
	usbOnly   bool
	ready     bool
}

// tickMsg drives the periodic re-enumeration
type tickMsg time.Time

func runWatchTUI(interval time.Duration, usbOnly bool) error {
	m := watchModel{
		WatchModel: models.NewWatchModel(),
		table:      components.NewPortsTable(),
		statusBar:  components.NewStatusBar("Serial Watch"),
		help:       help.New(),
		keys:       keys.NewWatchKeys(),
		interval:   interval,
		usbOnly:    usbOnly,
	}

	p := tea.NewProgram(&m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// refresh enumerates the ports off the update loop and reports back
func (m *watchModel) refresh() tea.Cmd {
	usbOnly := m.usbOnly
	return func() tea.Msg {
		var (
			ports []serialdevice.PortDescriptor
			err   error
		)
		if usbOnly {
			ports, err = serialdevice.ListPortsFiltered(serialdevice.ListFilter{USBOnly: true})
		} else {
			ports, err = serialdevice.ListPorts()
		}
		return models.PortsMsg{Ports: ports, Err: err, At: time.Now()}
	}
}

func (m *watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.tick())
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Status bar is single line
		statusBarHeight := 1
		m.table.SetSize(msg.Width, msg.Height-statusBarHeight)
		m.statusBar.SetWidth(msg.Width)
		m.ready = true

	case tickMsg:
		if m.Paused() {
			// Keep ticking so resume picks the refresh loop back up
			return m, m.tick()
		}
		return m, tea.Batch(m.refresh(), m.tick())

	case models.PortsMsg:
		m.Apply(msg)
		m.table.SetPorts(m.Snapshot(), func(name string) bool {
			return m.IsNew(name, newPortWindow)
		})

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			return m, m.refresh()

		case key.Matches(msg, m.keys.Pause):
			m.TogglePaused()

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		default:
			// Everything else is table navigation
			return m, m.table.Update(msg)
		}
	}

	return m, nil
}

func (m *watchModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	content := styles.ContentBorderStyle.Render(m.table.View())

	statusBar := m.statusBar.View(components.WatchStatus{
		Paused:      m.Paused(),
		PortCount:   len(m.Snapshot()),
		LastChange:  m.LastChange(),
		LastRefresh: m.LastRefresh(),
		Interval:    m.interval,
		Err:         m.Err(),
	})

	// Show help if requested
	if m.help.ShowAll {
		helpStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Margin(1, 0)

		return lipgloss.JoinVertical(
			lipgloss.Left,
			content,
			helpStyle.Render(m.help.View(m.keys)),
			statusBar,
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		statusBar,
	)
}
