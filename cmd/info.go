/*
Copyright © 2025 SerialLab <dev@seriallab.io>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	serialdevice "github.com/seriallab/go-serialdevice"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <port>",
	Short: "Display detailed information about a serial port",
	Long: `Display detailed information about a serial port including USB metadata.

Examples:
  serialdevice info /dev/ttyUSB0
  serialdevice info /dev/ttyACM0

For USB devices, this displays the vendor and product IDs, the serial
number, and the product description the host reports for the device.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		portName := args[0]
		check, _ := cmd.Flags().GetBool("check")

		ports, err := serialdevice.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}

		var info *serialdevice.PortDescriptor
		for i := range ports {
			if ports[i].Name == portName {
				info = &ports[i]
				break
			}
		}
		if info == nil {
			fmt.Fprintf(os.Stderr, "Error: port %s not found\n", portName)
			os.Exit(1)
		}

		fmt.Printf("Port Information: %s\n\n", info.Name)
		fmt.Printf("  Name:        %s\n", info.Name)
		fmt.Printf("  Type:        %s\n", info.TypeDescription())

		// USB Device Information
		if info.IsUSB {
			fmt.Println("\nUSB Device Information:")
			if info.VendorID != "" {
				fmt.Printf("  Vendor ID:    %s\n", info.VendorID)
			}
			if info.ProductID != "" {
				fmt.Printf("  Product ID:   %s\n", info.ProductID)
			}
			if info.SerialNumber != "" {
				fmt.Printf("  Serial:       %s\n", info.SerialNumber)
			}
			if info.Product != "" {
				fmt.Printf("  Product:      %s\n", info.Product)
			}
		}

		if check {
			fmt.Printf("\n  Available:   %s\n", availability(*info))
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolP("check", "c", false, "Check whether the port can be opened")
}
