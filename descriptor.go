package serialdevice

import (
	"fmt"
	"strings"
)

// PortDescriptor identifies a serial port as seen by the host, together with
// whatever hardware metadata the host exposes for it. A descriptor is a
// snapshot: the physical topology may change between enumeration and a later
// open attempt, so holding one never guarantees the port still exists.
type PortDescriptor struct {
	Name         string // device path or name, e.g. /dev/ttyUSB0 or COM3
	IsUSB        bool
	VendorID     string // hex as reported by the host, e.g. "2341"
	ProductID    string // hex as reported by the host, e.g. "0043"
	SerialNumber string
	Product      string // product string reported by the device, if any
}

// String renders a compact hardware-id form, e.g.
// "/dev/ttyUSB0 (USB VID:PID=2341:0043 SN=85736323)".
func (d PortDescriptor) String() string {
	if !d.IsUSB {
		return d.Name
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (USB", d.Name)
	if d.VendorID != "" || d.ProductID != "" {
		fmt.Fprintf(&b, " VID:PID=%s:%s", d.VendorID, d.ProductID)
	}
	if d.SerialNumber != "" {
		fmt.Fprintf(&b, " SN=%s", d.SerialNumber)
	}
	b.WriteString(")")
	return b.String()
}

// MatchesVIDPID reports whether the descriptor carries the given USB identity.
// Hex digits compare case-insensitively; non-USB ports never match.
func (d PortDescriptor) MatchesVIDPID(id VIDPID) bool {
	return d.IsUSB &&
		strings.EqualFold(d.VendorID, id.VID) &&
		strings.EqualFold(d.ProductID, id.PID)
}

// VIDPID is a USB vendor/product identity pair in hex notation.
type VIDPID struct {
	VID string
	PID string
}

// ParseVIDPID parses "VID:PID" hex notation such as "2341:0043".
func ParseVIDPID(s string) (VIDPID, error) {
	vid, pid, ok := strings.Cut(s, ":")
	if !ok || vid == "" || pid == "" {
		return VIDPID{}, fmt.Errorf("%w: expected VID:PID, got %q", ErrInvalidVIDPID, s)
	}
	for _, part := range []string{vid, pid} {
		for _, r := range part {
			if !isHexDigit(r) {
				return VIDPID{}, fmt.Errorf("%w: %q is not hexadecimal", ErrInvalidVIDPID, part)
			}
		}
	}
	return VIDPID{VID: vid, PID: pid}, nil
}

func (id VIDPID) String() string {
	return id.VID + ":" + id.PID
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
