package serialdevice

import (
	"io"
	"time"

	"go.bug.st/serial"
)

// Connection is a live, open handle to a serial port. Exactly one holder owns
// it at a time: the resolver while probing, the caller after a successful
// resolution. The owner is responsible for closing it.
//
// Reads honor the read timeout the connection was configured with; an expired
// timeout surfaces as a read of zero bytes with a nil error.
type Connection interface {
	io.ReadWriteCloser

	// Descriptor returns the port this connection was opened on.
	Descriptor() PortDescriptor

	// Config returns the settings the connection was opened with.
	Config() Config

	// SetReadTimeout changes the timeout for subsequent Reads.
	SetReadTimeout(timeout time.Duration) error

	// ResetInputBuffer discards received data that has not been read yet.
	ResetInputBuffer() error

	// ResetOutputBuffer discards written data that has not been sent yet.
	ResetOutputBuffer() error
}

// connection adapts the transport's port handle to the Connection interface.
type connection struct {
	port serial.Port
	desc PortDescriptor
	cfg  Config
}

// openPort opens a candidate with the given settings. It is a package
// variable so tests can drive the resolver without hardware.
var openPort = func(desc PortDescriptor, cfg Config) (Connection, error) {
	port, err := serial.Open(desc.Name, cfg.mode())
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, err
	}
	return &connection{port: port, desc: desc, cfg: cfg}, nil
}

func (c *connection) Read(p []byte) (int, error) {
	return c.port.Read(p)
}

func (c *connection) Write(p []byte) (int, error) {
	return c.port.Write(p)
}

func (c *connection) Close() error {
	return c.port.Close()
}

func (c *connection) Descriptor() PortDescriptor {
	return c.desc
}

func (c *connection) Config() Config {
	return c.cfg
}

func (c *connection) SetReadTimeout(timeout time.Duration) error {
	return c.port.SetReadTimeout(timeout)
}

func (c *connection) ResetInputBuffer() error {
	return c.port.ResetInputBuffer()
}

func (c *connection) ResetOutputBuffer() error {
	return c.port.ResetOutputBuffer()
}
