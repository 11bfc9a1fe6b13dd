package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"go.bug.st/serial"

	serialdevice "github.com/seriallab/go-serialdevice"
)

// Settings is the JSON payload of a connect request. Field names and units
// are part of the bridge's wire format; omitted fields keep their defaults.
type Settings struct {
	Baudrate int     `json:"baudrate"`
	Bytesize int     `json:"bytesize"`
	Parity   string  `json:"parity"`   // "N", "O", "E", "M", "S"
	Stopbits float64 `json:"stopbits"` // 1, 1.5 or 2
	Timeout  float64 `json:"timeout"`  // read timeout in seconds
}

// DefaultSettings returns the settings applied when a connect request omits
// fields: 9600 8N1 with a one second read timeout.
func DefaultSettings() Settings {
	return Settings{
		Baudrate: 9600,
		Bytesize: 8,
		Parity:   "N",
		Stopbits: 1,
		Timeout:  1,
	}
}

// decodeSettings parses a connect payload over the defaults. An empty
// payload yields the defaults unchanged.
func decodeSettings(payload []byte) (Settings, error) {
	settings := DefaultSettings()
	if len(payload) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(payload, &settings); err != nil {
		return Settings{}, fmt.Errorf("decoding connect settings: %w", err)
	}
	return settings, nil
}

// mode converts the settings into the transport's mode record, validating
// each field.
func (s Settings) mode() (*serial.Mode, error) {
	if s.Baudrate <= 0 {
		return nil, fmt.Errorf("invalid baudrate %d", s.Baudrate)
	}
	if s.Bytesize < 5 || s.Bytesize > 8 {
		return nil, fmt.Errorf("invalid bytesize %d", s.Bytesize)
	}

	mode := &serial.Mode{
		BaudRate: s.Baudrate,
		DataBits: s.Bytesize,
	}

	switch s.Parity {
	case "", "N":
		mode.Parity = serial.NoParity
	case "O":
		mode.Parity = serial.OddParity
	case "E":
		mode.Parity = serial.EvenParity
	case "M":
		mode.Parity = serial.MarkParity
	case "S":
		mode.Parity = serial.SpaceParity
	default:
		return nil, fmt.Errorf("invalid parity %q", s.Parity)
	}

	switch s.Stopbits {
	case 0, 1:
		mode.StopBits = serial.OneStopBit
	case 1.5:
		mode.StopBits = serial.OnePointFiveStopBits
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("invalid stopbits %v", s.Stopbits)
	}

	return mode, nil
}

// readTimeout converts the wire-format seconds into a duration for the read
// pump. A missing or nonpositive timeout falls back to one second so the
// pump always wakes up to notice a closed device.
func (s Settings) readTimeout() time.Duration {
	if s.Timeout <= 0 {
		return time.Second
	}
	return time.Duration(s.Timeout * float64(time.Second))
}

// statusPayload is the retained per-port state published after a connect.
type statusPayload struct {
	Port     string  `json:"port"`
	Baudrate int     `json:"baudrate"`
	Bytesize int     `json:"bytesize"`
	Parity   string  `json:"parity"`
	Stopbits float64 `json:"stopbits"`
	Timeout  float64 `json:"timeout"`
}

func newStatusPayload(port string, s Settings) statusPayload {
	return statusPayload{
		Port:     port,
		Baudrate: s.Baudrate,
		Bytesize: s.Bytesize,
		Parity:   s.Parity,
		Stopbits: s.Stopbits,
		Timeout:  s.Timeout,
	}
}

// comportEntry describes one visible port in the comports payload. Topic is
// the segment clients address the port by.
type comportEntry struct {
	Port         string `json:"port"`
	Topic        string `json:"topic"`
	USB          bool   `json:"usb"`
	VendorID     string `json:"vid,omitempty"`
	ProductID    string `json:"pid,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	Product      string `json:"product,omitempty"`
}

// comportsPayload encodes the retained listing, keyed by port name.
func comportsPayload(ports []serialdevice.PortDescriptor) ([]byte, error) {
	entries := make(map[string]comportEntry, len(ports))
	for _, p := range ports {
		entries[p.Name] = comportEntry{
			Port:         p.Name,
			Topic:        PortSegment(p.Name),
			USB:          p.IsUSB,
			VendorID:     p.VendorID,
			ProductID:    p.ProductID,
			SerialNumber: p.SerialNumber,
			Product:      p.Product,
		}
	}
	return json.Marshal(entries)
}
