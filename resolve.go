package serialdevice

import (
	"context"
	"fmt"
)

// ConnectionTest decides whether the device on the far end of an open
// connection is the one being looked for. It may read and write freely
// within the connection's timeout discipline. Returning (true, nil) claims
// the connection; any other outcome releases it and moves resolution on to
// the next candidate. Device-specific knowledge such as the expected banner
// or probe command is best captured by closure.
type ConnectionTest func(conn Connection) (bool, error)

// Resolve enumerates the host's serial ports and probes them in order until
// test accepts one. The matching Connection is returned open and becomes the
// caller's responsibility to close; every other connection opened along the
// way is closed before Resolve returns. When no port matches, the error is a
// *NoDeviceFoundError carrying one entry per attempted candidate.
func Resolve(test ConnectionTest, opts ...Option) (Connection, error) {
	return ResolveContext(context.Background(), test, opts...)
}

// ResolveContext is Resolve with a context consulted between candidates. An
// attempt already in flight is bounded by the configured read timeout, not
// by the context.
func ResolveContext(ctx context.Context, test ConnectionTest, opts ...Option) (Connection, error) {
	candidates, err := ListPorts()
	if err != nil {
		return nil, err
	}
	return ResolvePortsContext(ctx, candidates, test, opts...)
}

// ResolvePorts probes only the given candidates, in the given order. An
// empty candidate list fails immediately with an empty failure list; it
// never touches the enumeration backend.
func ResolvePorts(candidates []PortDescriptor, test ConnectionTest, opts ...Option) (Connection, error) {
	return ResolvePortsContext(context.Background(), candidates, test, opts...)
}

// ResolvePortsContext is ResolvePorts with a context consulted between
// candidates.
func ResolvePortsContext(ctx context.Context, candidates []PortDescriptor, test ConnectionTest, opts ...Option) (Connection, error) {
	if test == nil {
		return nil, ErrNilTest
	}
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	failures := make([]Failure, 0, len(candidates))
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		conn, err := openPort(candidate, cfg)
		if err != nil {
			// Probing is speculative: a port that cannot be opened is a
			// recorded outcome, not a failure of the resolution itself.
			failures = append(failures, Failure{Port: candidate, Err: classifyOpenError(err)})
			continue
		}

		ok, err := runTest(test, conn)
		if ok && err == nil {
			return conn, nil
		}
		conn.Close()
		if err == nil {
			err = ErrNotRecognized
		}
		failures = append(failures, Failure{Port: candidate, Err: err})
	}

	return nil, &NoDeviceFoundError{Failures: failures}
}

// runTest invokes the caller's test, converting a panic into an ordinary
// test error so the connection can still be released.
func runTest(test ConnectionTest, conn Connection) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("connection test panicked: %v", r)
		}
	}()
	return test(conn)
}
