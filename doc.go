// Package serialdevice discovers which serial port a physical device is
// attached to, without the caller having to know the port name in advance.
//
// The library answers two questions: which serial ports does this host have
// right now, and which one of them has my device on the other end. The first
// is a plain enumeration; the second opens candidate ports one at a time and
// runs a caller-supplied recognition test against each until one matches.
//
// # Listing Ports
//
// Enumerate the host's serial ports with their USB metadata:
//
//	ports, err := serialdevice.ListPorts()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range ports {
//	    fmt.Println(p) // e.g. /dev/ttyUSB0 (USB VID:PID=2341:0043 SN=85736323)
//	}
//
// Listings can be narrowed to USB ports, known VID:PID identities, or a
// name pattern:
//
//	id, _ := serialdevice.ParseVIDPID("2341:0043")
//	arduinos, err := serialdevice.ListPortsFiltered(serialdevice.ListFilter{
//	    VIDPIDs: []serialdevice.VIDPID{id},
//	})
//
// # Resolving a Device
//
// Resolve probes every visible port in order and returns the first one the
// test recognizes, already open and configured:
//
//	conn, err := serialdevice.Resolve(
//	    serialdevice.ExpectTest([]byte("PING\r\n"), []byte("PONG"), 2*time.Second),
//	    serialdevice.WithBaudRate(9600),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
// Every port the resolver opened and rejected is closed again before Resolve
// returns; only the matching connection stays open, and it belongs to the
// caller. When no port matches, the returned error is a *NoDeviceFoundError
// listing each attempted port together with the reason it was rejected:
//
//	var nde *serialdevice.NoDeviceFoundError
//	if errors.As(err, &nde) {
//	    for _, f := range nde.Failures {
//	        fmt.Printf("%s: %v\n", f.Port.Name, f.Err)
//	    }
//	}
//
// ResolvePorts restricts probing to an explicit candidate list, for example
// a filtered listing. Candidates are tried strictly in the given order and
// probing stops at the first match.
//
// # Connection Tests
//
// A ConnectionTest is any func(Connection) (bool, error). Tests built from
// closures carry the device-specific knowledge:
//
//	test := func(conn serialdevice.Connection) (bool, error) {
//	    reply, err := serialdevice.Request(conn, []byte("*IDN?\n"), time.Second, nil)
//	    if err != nil {
//	        return false, err
//	    }
//	    return bytes.Contains(reply, []byte("ACME Instruments")), nil
//	}
//
// A test returning an error counts the same as returning false: the port is
// rejected and recorded, and resolution moves on. RequestTest and ExpectTest
// cover the common write-then-match shape.
//
// # Configuration Options
//
// Ports are opened with functional options over the defaults:
//
//	conn, err := serialdevice.Resolve(test,
//	    serialdevice.WithBaudRate(19200),
//	    serialdevice.WithParity(serialdevice.ParityEven),
//	    serialdevice.WithReadTimeout(500*time.Millisecond),
//	)
//
// The read timeout bounds each probe attempt: a silent port costs at most
// one timeout before the resolver moves on.
//
// # Error Handling
//
// Open failures are classified onto sentinel errors while keeping the
// underlying cause in the chain:
//
//	if errors.Is(f.Err, serialdevice.ErrPortBusy) {
//	    // another process holds the port
//	}
//
// ErrPortNotFound and ErrPermissionDenied are classified the same way;
// ErrNotRecognized marks ports whose test simply returned false.
//
// # Platform Support
//
// Enumeration and probing work on Linux, macOS and Windows through the host
// serial stack. USB metadata (VID, PID, serial number, product string) is
// populated where the host exposes it.
//
// # Default Configuration
//
//   - BaudRate: 115200
//   - DataBits: 8
//   - StopBits: 1
//   - Parity: None
//   - ReadTimeout: 2.5 seconds
package serialdevice
