package serialdevice

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/sys/unix"
)

func TestClassifyOpenError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"busy", unix.EBUSY, ErrPortBusy},
		{"access denied", unix.EACCES, ErrPermissionDenied},
		{"operation not permitted", unix.EPERM, ErrPermissionDenied},
		{"no such file", unix.ENOENT, ErrPortNotFound},
		{"no such device or address", unix.ENXIO, ErrPortNotFound},
		{"no such device", unix.ENODEV, ErrPortNotFound},
		{"wrapped errno", fmt.Errorf("open /dev/ttyUSB0: %w", unix.EBUSY), ErrPortBusy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyOpenError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyOpenError(%v) = %v, want %v", tt.err, got, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("classifyOpenError(%v) dropped the original error from the chain", tt.err)
			}
		})
	}
}

func TestClassifyOpenErrorPassthrough(t *testing.T) {
	plain := errors.New("something strange")
	if got := classifyOpenError(plain); got != plain {
		t.Errorf("classifyOpenError(unclassifiable) = %v, want the error unchanged", got)
	}
}

func TestEnumerationError(t *testing.T) {
	cause := errors.New("udev unavailable")
	err := &EnumerationError{Err: cause}

	if !strings.Contains(err.Error(), "enumerating serial ports") {
		t.Errorf("Error() = %q, want enumeration context", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap() does not reach the cause")
	}
}

func TestFailureString(t *testing.T) {
	f := Failure{
		Port: PortDescriptor{Name: "/dev/ttyUSB0"},
		Err:  ErrNotRecognized,
	}
	want := "/dev/ttyUSB0: device not recognized"
	if got := f.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNoDeviceFoundErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		failures []Failure
		contains []string
	}{
		{
			name:     "no candidates",
			failures: nil,
			contains: []string{"no candidate ports"},
		},
		{
			name: "single failure",
			failures: []Failure{
				{Port: PortDescriptor{Name: "/dev/ttyUSB0"}, Err: ErrPortBusy},
			},
			contains: []string{"1 port(s)", "/dev/ttyUSB0", "busy"},
		},
		{
			name: "multiple failures in order",
			failures: []Failure{
				{Port: PortDescriptor{Name: "/dev/ttyUSB0"}, Err: ErrNotRecognized},
				{Port: PortDescriptor{Name: "/dev/ttyUSB1"}, Err: ErrPortBusy},
			},
			contains: []string{"2 port(s)", "/dev/ttyUSB0", "/dev/ttyUSB1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &NoDeviceFoundError{Failures: tt.failures}
			msg := err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, want it to mention %q", msg, want)
				}
			}
		})
	}
}

func TestNoDeviceFoundErrorOrdering(t *testing.T) {
	err := &NoDeviceFoundError{Failures: []Failure{
		{Port: PortDescriptor{Name: "/dev/ttyUSB0"}, Err: ErrNotRecognized},
		{Port: PortDescriptor{Name: "/dev/ttyUSB1"}, Err: ErrNotRecognized},
	}}

	msg := err.Error()
	first := strings.Index(msg, "/dev/ttyUSB0")
	second := strings.Index(msg, "/dev/ttyUSB1")
	if first < 0 || second < 0 || first > second {
		t.Errorf("Error() = %q, want failures listed in attempt order", msg)
	}
}
