package mqtt

import "testing"

func TestPortSegment(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"/dev/ttyUSB0", "ttyUSB0"},
		{"/dev/ttyACM1", "ttyACM1"},
		{"/dev/serial/by-id/usb-FTDI_FT232R-if00", "serial_by-id_usb-FTDI_FT232R-if00"},
		{"COM3", "COM3"},
		{"ttyUSB0", "ttyUSB0"},
	}

	for _, tt := range tests {
		if got := PortSegment(tt.name); got != tt.want {
			t.Errorf("PortSegment(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		topic       string
		wantPort    string
		wantCommand string
		wantOK      bool
	}{
		{"serial_device/ttyUSB0/connect", "ttyUSB0", "connect", true},
		{"serial_device/ttyUSB0/close", "ttyUSB0", "close", true},
		{"serial_device/COM3/send", "COM3", "send", true},
		{"serial_device/refresh_comports", "", "refresh_comports", true},

		// The bridge's own publishes must never parse as requests.
		{"serial_device/comports", "", "", false},
		{"serial_device/ttyUSB0/status", "", "", false},
		{"serial_device/ttyUSB0/received", "", "", false},

		{"serial_device", "", "", false},
		{"serial_device/", "", "", false},
		{"serial_device/ttyUSB0", "", "", false},
		{"serial_device/a/b/connect", "", "", false},
		{"other_prefix/ttyUSB0/connect", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			port, command, ok := parseRequest(DefaultPrefix, tt.topic)
			if ok != tt.wantOK {
				t.Fatalf("parseRequest(%q) ok = %v, want %v", tt.topic, ok, tt.wantOK)
			}
			if port != tt.wantPort {
				t.Errorf("parseRequest(%q) port = %q, want %q", tt.topic, port, tt.wantPort)
			}
			if command != tt.wantCommand {
				t.Errorf("parseRequest(%q) command = %q, want %q", tt.topic, command, tt.wantCommand)
			}
		})
	}
}

func TestParseRequestCustomPrefix(t *testing.T) {
	port, command, ok := parseRequest("lab/serial", "lab/serial/ttyUSB0/connect")
	if !ok || port != "ttyUSB0" || command != "connect" {
		t.Errorf("parseRequest with custom prefix = (%q, %q, %v), want (ttyUSB0, connect, true)",
			port, command, ok)
	}

	if _, _, ok := parseRequest("lab/serial", "serial_device/ttyUSB0/connect"); ok {
		t.Error("foreign prefix should not parse")
	}
}

func TestTopicBuilders(t *testing.T) {
	if got := comportsTopic(DefaultPrefix); got != "serial_device/comports" {
		t.Errorf("comportsTopic = %q", got)
	}
	if got := statusTopic(DefaultPrefix, "ttyUSB0"); got != "serial_device/ttyUSB0/status" {
		t.Errorf("statusTopic = %q", got)
	}
	if got := receivedTopic(DefaultPrefix, "ttyUSB0"); got != "serial_device/ttyUSB0/received" {
		t.Errorf("receivedTopic = %q", got)
	}
	if got := requestWildcard(DefaultPrefix); got != "serial_device/#" {
		t.Errorf("requestWildcard = %q", got)
	}
}
