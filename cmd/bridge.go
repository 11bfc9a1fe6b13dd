/*
Copyright © 2025 SerialLab <dev@seriallab.io>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seriallab/go-serialdevice/internal/logging"
	"github.com/seriallab/go-serialdevice/mqtt"
)

// bridgeCmd represents the bridge command
var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Expose serial ports over MQTT",
	Long: `Expose the host's serial ports over an MQTT broker.

The bridge publishes the available ports and accepts commands on a
shared topic prefix (serial_device by default):

  serial_device/comports           retained port listing
  serial_device/refresh_comports   ask for a fresh listing
  serial_device/<port>/connect     open the port, payload holds settings
  serial_device/<port>/send        write the payload to the port
  serial_device/<port>/close       close the port
  serial_device/<port>/status      retained connection status
  serial_device/<port>/received    data read from the port

Port names are flattened into topic segments by dropping the /dev/
prefix and replacing slashes with underscores, so /dev/ttyUSB0 is
addressed as ttyUSB0.

Runs continuously until interrupted (Ctrl+C).

Example usage:
  serialdevice bridge
  serialdevice bridge --broker tcp://broker.local:1883 --prefix lab
  serialdevice bridge --log-file bridge.log --log-level debug`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.New(logging.Config{
			Level: viper.GetString("bridge.log-level"),
			File:  viper.GetString("bridge.log-file"),
		})
		defer log.Sync()

		manager := mqtt.NewManager(mqtt.Options{
			BrokerURL: viper.GetString("bridge.broker"),
			ClientID:  viper.GetString("bridge.client-id"),
			Prefix:    viper.GetString("bridge.prefix"),
			QoS:       byte(viper.GetInt("bridge.qos")),
		}, log)

		if err := manager.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Bridge connected to %s\n", viper.GetString("bridge.broker"))
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop\n")

		// Setup signal handling for clean shutdown
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, shutting down...\n")
		manager.Stop()
	},
}

func init() {
	rootCmd.AddCommand(bridgeCmd)

	bridgeCmd.Flags().String("broker", "tcp://localhost:1883", "MQTT broker URL")
	bridgeCmd.Flags().String("client-id", "", "MQTT client id (default: random serialdevice-* id)")
	bridgeCmd.Flags().String("prefix", mqtt.DefaultPrefix, "Topic prefix")
	bridgeCmd.Flags().Int("qos", 0, "QoS for published messages")
	bridgeCmd.Flags().String("log-file", "", "Write logs to this file instead of stderr")
	bridgeCmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")

	// Let the config file and environment override the flag defaults
	viper.BindPFlag("bridge.broker", bridgeCmd.Flags().Lookup("broker"))
	viper.BindPFlag("bridge.client-id", bridgeCmd.Flags().Lookup("client-id"))
	viper.BindPFlag("bridge.prefix", bridgeCmd.Flags().Lookup("prefix"))
	viper.BindPFlag("bridge.qos", bridgeCmd.Flags().Lookup("qos"))
	viper.BindPFlag("bridge.log-file", bridgeCmd.Flags().Lookup("log-file"))
	viper.BindPFlag("bridge.log-level", bridgeCmd.Flags().Lookup("log-level"))
}
