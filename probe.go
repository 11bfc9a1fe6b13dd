package serialdevice

import (
	"bytes"
	"time"
)

// probePollInterval is the read granularity inside Request: short enough to
// notice replies promptly, long enough to avoid spinning on a silent port.
const probePollInterval = 50 * time.Millisecond

// Request writes payload to the connection and accumulates the device's
// reply until accept approves it or timeout elapses. A nil accept is
// satisfied by the first nonempty read. On timeout the partial reply
// collected so far is returned together with ErrProbeTimeout.
//
// The input buffer is flushed before writing so stale bytes from an earlier
// probe cannot masquerade as the reply, and the connection's configured read
// timeout is restored before returning.
func Request(conn Connection, payload []byte, timeout time.Duration, accept func(reply []byte) bool) ([]byte, error) {
	if err := conn.ResetInputBuffer(); err != nil {
		return nil, err
	}
	if _, err := conn.Write(payload); err != nil {
		return nil, err
	}

	defer conn.SetReadTimeout(conn.Config().ReadTimeout)
	if err := conn.SetReadTimeout(probePollInterval); err != nil {
		return nil, err
	}

	if accept == nil {
		accept = func(reply []byte) bool { return len(reply) > 0 }
	}

	var reply []byte
	buf := make([]byte, 256)
	deadline := time.Now().Add(timeout)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return reply, err
		}
		if n > 0 {
			reply = append(reply, buf[:n]...)
			if accept(reply) {
				return reply, nil
			}
		}
		// An expired read timeout surfaces as a zero-byte read.
		if time.Now().After(deadline) {
			return reply, ErrProbeTimeout
		}
	}
}

// RequestTest builds a ConnectionTest that sends payload and accepts the
// port when validate approves the reply. validate doubles as the read loop's
// accept criterion, so a reply that never validates runs out the timeout and
// the test reports the port as not recognized. A nil validate accepts any
// nonempty reply.
func RequestTest(payload []byte, timeout time.Duration, validate func(reply []byte) bool) ConnectionTest {
	if validate == nil {
		validate = func(reply []byte) bool { return len(reply) > 0 }
	}
	return func(conn Connection) (bool, error) {
		if _, err := Request(conn, payload, timeout, validate); err != nil {
			return false, err
		}
		return true, nil
	}
}

// ExpectTest builds a ConnectionTest that sends payload and accepts the
// port when the reply contains expect.
func ExpectTest(payload, expect []byte, timeout time.Duration) ConnectionTest {
	return RequestTest(payload, timeout, func(reply []byte) bool {
		return bytes.Contains(reply, expect)
	})
}
