package link

import (
	"fmt"
	"io"
	"sync/atomic"

	"go.bug.st/serial"
)

// serialLink carries protocol bytes over a serial device.
type serialLink struct {
	port   io.WriteCloser
	live   atomic.Bool
	closed atomic.Bool
}

func openSerial(device string, baud int) (*serialLink, error) {
	p, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}
	l := &serialLink{port: p}
	l.live.Store(true)
	return l, nil
}

// SendAll writes the entire buffer. Partial writes, including zero-byte
// ones, are simply retried; serial lines have no broken-pipe signal.
func (l *serialLink) SendAll(buf []byte) error {
	for len(buf) > 0 {
		n, err := l.port.Write(buf)
		if err != nil {
			l.live.Store(false)
			return err
		}
		buf = buf[n:]
	}
	return nil
}

// Close clears the liveness flag before releasing the handle and swallows
// close-time errors.
func (l *serialLink) Close() error {
	l.live.Store(false)
	if l.closed.Swap(true) {
		return nil
	}
	_ = l.port.Close()
	return nil
}

func (l *serialLink) Live() bool { return l.live.Load() }
