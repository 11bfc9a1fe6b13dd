// Package mqtt exposes the host's serial ports over an MQTT broker.
//
// The bridge publishes which ports exist and relays bytes between connected
// clients and the ports they ask for. All topics live under a configurable
// prefix, "serial_device" by default:
//
//	serial_device/comports            retained listing of visible ports
//	serial_device/refresh_comports    request a fresh listing
//	serial_device/<port>/connect      open the port; payload is JSON settings
//	serial_device/<port>/close        close the port
//	serial_device/<port>/send         write the payload to the port
//	serial_device/<port>/status       retained settings of an open port
//	serial_device/<port>/received     bytes read from the port
//
// The <port> segment is the device name with the /dev/ prefix stripped and
// any remaining slashes replaced, so /dev/ttyUSB0 becomes ttyUSB0. Retained
// publishes let late-joining clients see the current listing and per-port
// state without asking.
//
//	manager := mqtt.NewManager(mqtt.Options{BrokerURL: "tcp://localhost:1883"}, logger)
//	if err := manager.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer manager.Stop()
package mqtt
