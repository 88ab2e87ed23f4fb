package board

import "errors"

// ErrTransportBroken is returned by a network transport when the peer stops
// accepting bytes (zero-length write on a live connection).
var ErrTransportBroken = errors.New("transport broken")

// Transport is one physical communication channel carrying already-encoded
// protocol bytes. Exactly one Sender writes to a Transport at any time.
type Transport interface {
	// SendAll writes the entire buffer, looping on partial writes.
	SendAll(buf []byte) error
	// Close is idempotent and clears the liveness flag before releasing
	// the handle. Close-time errors are swallowed.
	Close() error
	// Live reports whether the channel is still usable.
	Live() bool
}

// Opener resolves an address spec into a live, connected Transport. The
// caller owns closing the Transport it receives.
type Opener func(spec *AddrSpec) (Transport, error)
