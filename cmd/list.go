/*
Copyright © 2025 SerialLab <dev@seriallab.io>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	serialdevice "github.com/seriallab/go-serialdevice"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List the serial ports this host exposes, with USB metadata where
the host provides it.

The listing can be narrowed to USB-backed ports, to specific USB
identities, or to names matching a pattern:

  serialdevice list --usb
  serialdevice list --id 2341:0043 --id 0403:6001
  serialdevice list --match 'ttyUSB\d+'

With --check each port is opened and closed again to report whether it
is currently available or held by another process.`,
	Run: func(cmd *cobra.Command, args []string) {
		usbOnly, _ := cmd.Flags().GetBool("usb")
		ids, _ := cmd.Flags().GetStringArray("id")
		match, _ := cmd.Flags().GetString("match")
		check, _ := cmd.Flags().GetBool("check")
		tableFormat, _ := cmd.Flags().GetBool("table")

		filter := serialdevice.ListFilter{USBOnly: usbOnly}
		for _, s := range ids {
			id, err := serialdevice.ParseVIDPID(s)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			filter.VIDPIDs = append(filter.VIDPIDs, id)
		}
		if match != "" {
			pattern, err := regexp.Compile(match)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid --match pattern: %v\n", err)
				os.Exit(1)
			}
			filter.Pattern = pattern
		}

		ports, err := serialdevice.ListPortsFiltered(filter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}

		if len(ports) == 0 {
			if usbOnly || len(ids) > 0 || match != "" {
				fmt.Println("No serial ports found matching filter")
			} else {
				fmt.Println("No serial ports found")
			}
			return
		}

		if tableFormat {
			renderTable(ports, check)
		} else {
			renderSimple(ports, check)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	// Here you will define your flags and configuration settings.

	// Cobra supports Persistent Flags which will work for this command
	// and all subcommands, e.g.:
	// listCmd.PersistentFlags().String("foo", "", "A help for foo")

	listCmd.Flags().BoolP("usb", "u", false, "Only list USB-backed ports")
	listCmd.Flags().StringArray("id", nil, "Only list ports with this VID:PID (repeatable)")
	listCmd.Flags().StringP("match", "m", "", "Only list ports whose name matches this pattern")
	listCmd.Flags().BoolP("check", "c", false, "Check whether each port can be opened")
	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}

// renderTable renders the port list in a styled static table format
func renderTable(ports []serialdevice.PortDescriptor, check bool) {
	fmt.Printf("Found %d serial port(s):\n\n", len(ports))

	// Define column widths
	portWidth := 18
	idWidth := 12
	serialWidth := 16
	descWidth := 28
	availWidth := 20

	// Create styles
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240")).
		PaddingBottom(1)

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	// Print header
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s",
		portWidth, "Port",
		idWidth, "VID:PID",
		serialWidth, "Serial",
		descWidth, "Description")
	if check {
		header += fmt.Sprintf(" %-*s", availWidth, "Available")
	}
	fmt.Println(headerStyle.Render(header))

	// Print rows
	for _, port := range ports {
		identity := ""
		if port.VendorID != "" || port.ProductID != "" {
			identity = port.VendorID + ":" + port.ProductID
		}
		description := port.Product
		if description == "" {
			description = port.TypeDescription()
		}

		row := fmt.Sprintf("%-*s %-*s %-*s %-*s",
			portWidth, port.Name,
			idWidth, identity,
			serialWidth, port.SerialNumber,
			descWidth, description)
		if check {
			row += fmt.Sprintf(" %-*s", availWidth, availability(port))
		}
		fmt.Println(cellStyle.Render(row))
	}
}

// renderSimple renders the port list in simple text format
func renderSimple(ports []serialdevice.PortDescriptor, check bool) {
	for _, port := range ports {
		if check {
			fmt.Printf("%s\t%s\n", port.Name, availability(port))
			continue
		}
		fmt.Println(port.Name)
	}
}

// availability opens and closes the port to see whether anyone else holds it
func availability(port serialdevice.PortDescriptor) string {
	if err := serialdevice.CheckAvailable(port); err != nil {
		return fmt.Sprintf("no (%s)", rootCause(err))
	}
	return "yes"
}

// rootCause reduces a classified open error to a short reason for display
func rootCause(err error) string {
	switch {
	case errors.Is(err, serialdevice.ErrPortBusy):
		return "busy"
	case errors.Is(err, serialdevice.ErrPermissionDenied):
		return "permission denied"
	case errors.Is(err, serialdevice.ErrPortNotFound):
		return "not found"
	}
	return err.Error()
}
