package serialdevice

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	"go.bug.st/serial"
	"golang.org/x/sys/unix"
)

// Predefined error types for robust error handling
var (
	ErrPortBusy         = errors.New("serial port is busy")
	ErrPortNotFound     = errors.New("serial port does not exist")
	ErrPermissionDenied = errors.New("permission denied accessing serial port")
	ErrNotRecognized    = errors.New("device not recognized")
	ErrNilTest          = errors.New("no connection test provided")
	ErrInvalidBaudRate  = errors.New("invalid baud rate")
	ErrInvalidConfig    = errors.New("invalid serial configuration")
	ErrInvalidVIDPID    = errors.New("invalid VID:PID")
	ErrProbeTimeout     = errors.New("probe timed out waiting for a reply")
)

// EnumerationError reports that the host's port-listing facility itself
// failed. It is a host or environment problem, never a per-port one: a
// healthy host with zero serial ports yields an empty listing, not this.
type EnumerationError struct {
	Err error
}

func (e *EnumerationError) Error() string {
	return "enumerating serial ports: " + e.Err.Error()
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// Failure records why a single candidate port was rejected during resolution.
type Failure struct {
	Port PortDescriptor
	Err  error
}

func (f Failure) String() string {
	return f.Port.Name + ": " + f.Err.Error()
}

// NoDeviceFoundError is returned when every candidate has been tried without
// a match. Failures holds one entry per attempted candidate, in the order the
// candidates were tried; it is empty when there were no candidates at all.
type NoDeviceFoundError struct {
	Failures []Failure
}

func (e *NoDeviceFoundError) Error() string {
	if len(e.Failures) == 0 {
		return "no device found: no candidate ports"
	}
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.String()
	}
	return fmt.Sprintf("no device found on %d port(s): %s",
		len(e.Failures), strings.Join(parts, "; "))
}

// classifyOpenError maps transport open failures onto the package sentinels
// while keeping the original error in the chain for inspection.
func classifyOpenError(err error) error {
	var sentinel error

	var portErr *serial.PortError
	if errors.As(err, &portErr) {
		switch portErr.Code() {
		case serial.PortBusy:
			sentinel = ErrPortBusy
		case serial.PortNotFound:
			sentinel = ErrPortNotFound
		case serial.PermissionDenied:
			sentinel = ErrPermissionDenied
		}
	}

	if sentinel == nil {
		var errno syscall.Errno
		if errors.As(err, &errno) {
			switch errno {
			case unix.EBUSY:
				sentinel = ErrPortBusy
			case unix.EACCES, unix.EPERM:
				sentinel = ErrPermissionDenied
			case unix.ENOENT, unix.ENXIO, unix.ENODEV:
				sentinel = ErrPortNotFound
			}
		}
	}

	if sentinel == nil {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
