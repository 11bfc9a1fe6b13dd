/*
Copyright © 2025 SerialLab <dev@seriallab.io>
*/
package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	serialdevice "github.com/seriallab/go-serialdevice"
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find a device by probing serial ports",
	Long: `Probe serial ports one after another until one of them answers like
the device being looked for, then report which port it is on.

The probe is shaped by flags. With --probe the given data is written to
each candidate and any reply accepts the port; adding --expect requires
the reply to contain that text. With only --expect nothing is written
and the port is accepted when its banner contains the text. With
neither, the first port that opens wins.

Candidates can be narrowed the same way as for list:

  serialdevice find --probe 'AT' --expect 'OK'
  serialdevice find --probe '01030000' --hex --id 0403:6001
  serialdevice find --expect 'GRBL' --usb --baud 9600`,
	Run: func(cmd *cobra.Command, args []string) {
		probe, _ := cmd.Flags().GetString("probe")
		expect, _ := cmd.Flags().GetString("expect")
		hexMode, _ := cmd.Flags().GetBool("hex")
		addNewline, _ := cmd.Flags().GetBool("newline")
		usbOnly, _ := cmd.Flags().GetBool("usb")
		ids, _ := cmd.Flags().GetStringArray("id")
		match, _ := cmd.Flags().GetString("match")
		baudRate, _ := cmd.Flags().GetInt("baud")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		infoStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

		successStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)

		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

		// Process probe data based on flags
		payload := probe
		if hexMode && payload != "" {
			processed, err := parseHexString(payload)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid hex data: %v\n", err)
				os.Exit(1)
			}
			payload = processed
		}
		if addNewline && !hexMode && payload != "" {
			payload += "\n"
		}
		want := expect
		if hexMode && want != "" {
			processed, err := parseHexString(want)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid hex data: %v\n", err)
				os.Exit(1)
			}
			want = processed
		}

		// The test captures the winning reply so it can be shown afterwards
		var reply []byte
		test := func(conn serialdevice.Connection) (bool, error) {
			return true, nil
		}
		if payload != "" || want != "" {
			accept := func(data []byte) bool { return len(data) > 0 }
			if want != "" {
				accept = func(data []byte) bool { return bytes.Contains(data, []byte(want)) }
			}
			test = func(conn serialdevice.Connection) (bool, error) {
				data, err := serialdevice.Request(conn, []byte(payload), timeout, accept)
				reply = data
				if err != nil {
					return false, err
				}
				return true, nil
			}
		}

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

		candidates, err := serialdevice.ListPortsFiltered(filter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Probing %d port(s)...\n", infoStyle.Render("⚡"), len(candidates))

		// Ctrl-C stops the scan between candidates
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		conn, err := serialdevice.ResolvePortsContext(ctx, candidates, test,
			serialdevice.WithBaudRate(baudRate))
		if err != nil {
			var nde *serialdevice.NoDeviceFoundError
			if errors.As(err, &nde) {
				fmt.Printf("%s No device found\n", errorStyle.Render("✗"))
				for _, failure := range nde.Failures {
					fmt.Printf("  %s: %v\n", failure.Port.Name, failure.Err)
				}
			} else {
				fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("✗"), err)
			}
			os.Exit(1)
		}
		defer conn.Close()

		fmt.Printf("%s Found device: %s\n", successStyle.Render("✓"), conn.Descriptor())
		if len(reply) > 0 {
			fmt.Printf("%s Reply: %s\n", infoStyle.Render("📋"), printable(string(reply)))
		}
	},
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().StringP("probe", "p", "", "Data to send to each candidate port")
	findCmd.Flags().StringP("expect", "e", "", "Text the reply must contain")
	findCmd.Flags().BoolP("hex", "x", false, "Interpret probe and expect data as hexadecimal")
	findCmd.Flags().BoolP("newline", "n", false, "Add newline character to the end of the probe data")
	findCmd.Flags().BoolP("usb", "u", false, "Only probe USB-backed ports")
	findCmd.Flags().StringArray("id", nil, "Only probe ports with this VID:PID (repeatable)")
	findCmd.Flags().StringP("match", "m", "", "Only probe ports whose name matches this pattern")
	findCmd.Flags().IntP("baud", "b", 115200, "Baud rate (default: 115200)")
	findCmd.Flags().DurationP("timeout", "t", 2*time.Second, "How long to wait for each port's reply (default: 2s)")
}

func parseHexString(hexStr string) (string, error) {
	// Remove common hex prefixes and whitespace
	hexStr = strings.ReplaceAll(hexStr, " ", "")
	hexStr = strings.ReplaceAll(hexStr, "0x", "")
	hexStr = strings.ReplaceAll(hexStr, "0X", "")

	if len(hexStr)%2 != 0 {
		return "", fmt.Errorf("hex string must have even length")
	}

	var result strings.Builder
	for i := 0; i < len(hexStr); i += 2 {
		hexByte := hexStr[i : i+2]
		var b byte
		if _, err := fmt.Sscanf(hexByte, "%x", &b); err != nil {
			return "", fmt.Errorf("invalid hex byte '%s': %v", hexByte, err)
		}
		result.WriteByte(b)
	}

	return result.String(), nil
}

// printable trims data for display and masks non-printable characters
func printable(data string) string {
	if len(data) > 50 {
		data = data[:50] + "..."
	}
	return strings.Map(func(r rune) rune {
		if r < 32 || r > 126 {
			return '·'
		}
		return r
	}, data)
}
