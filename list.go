package serialdevice

import (
	"regexp"
	"sort"
	"strings"

	"go.bug.st/serial/enumerator"
)

// detailedPorts is the host enumeration backend. It is a package variable so
// tests can run against synthetic hosts.
var detailedPorts = enumerator.GetDetailedPortsList

// ListPorts returns a snapshot of the serial ports currently visible on the
// host, sorted by name for a stable probing order. A host with no serial
// ports yields an empty slice. Only a failure of the listing facility itself
// produces an error, reported as *EnumerationError; individual ports never
// fail a listing.
func ListPorts() ([]PortDescriptor, error) {
	details, err := detailedPorts()
	if err != nil {
		return nil, &EnumerationError{Err: err}
	}

	ports := make([]PortDescriptor, 0, len(details))
	for _, d := range details {
		ports = append(ports, PortDescriptor{
			Name:         d.Name,
			IsUSB:        d.IsUSB,
			VendorID:     d.VID,
			ProductID:    d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}

	sort.Slice(ports, func(i, j int) bool {
		return ports[i].Name < ports[j].Name
	})

	return ports, nil
}

// ListFilter narrows a port listing. The zero value matches every port.
type ListFilter struct {
	USBOnly bool
	VIDPIDs []VIDPID       // match any of these identities; empty matches all
	Pattern *regexp.Regexp // match against the port name; nil matches all
}

func (f ListFilter) matches(d PortDescriptor) bool {
	if f.USBOnly && !d.IsUSB {
		return false
	}
	if f.Pattern != nil && !f.Pattern.MatchString(d.Name) {
		return false
	}
	if len(f.VIDPIDs) > 0 {
		for _, id := range f.VIDPIDs {
			if d.MatchesVIDPID(id) {
				return true
			}
		}
		return false
	}
	return true
}

// ListPortsFiltered returns the subset of ListPorts matching the filter,
// preserving the sorted order.
func ListPortsFiltered(filter ListFilter) ([]PortDescriptor, error) {
	ports, err := ListPorts()
	if err != nil {
		return nil, err
	}

	var filtered []PortDescriptor
	for _, p := range ports {
		if filter.matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// CheckAvailable reports whether the port can currently be opened with the
// given settings, by opening and immediately closing it. nil means the port
// is available; otherwise the classified open failure is returned, e.g.
// ErrPortBusy when another process holds the port.
func CheckAvailable(desc PortDescriptor, opts ...Option) error {
	cfg, err := newConfig(opts...)
	if err != nil {
		return err
	}
	conn, err := openPort(desc, cfg)
	if err != nil {
		return classifyOpenError(err)
	}
	conn.Close()
	return nil
}

// TypeDescription provides a human-readable description for the port based
// on its device name, used as a fallback when no product string is available.
func (d PortDescriptor) TypeDescription() string {
	name := strings.TrimPrefix(d.Name, "/dev/")
	switch {
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial Port"
	case strings.HasPrefix(name, "ttySAC"):
		return "Samsung Serial Port"
	case strings.HasPrefix(name, "ttyTHS"):
		return "Tegra Serial Port"
	case strings.HasPrefix(name, "ttyO"):
		return "OMAP Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	case strings.HasPrefix(name, "COM"):
		return "Standard Serial Port"
	case strings.HasPrefix(name, "cu."), strings.HasPrefix(name, "tty."):
		return "Serial Port"
	default:
		return "Serial Port"
	}
}
