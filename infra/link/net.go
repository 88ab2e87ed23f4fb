package link

import (
	"fmt"
	"net"
	"strconv"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/openvelo/scoreboard/core/board"
)

// netLink carries protocol bytes over a TCP or UDP socket.
type netLink struct {
	conn   net.Conn
	live   atomic.Bool
	closed atomic.Bool
}

func newNetLink(c net.Conn) *netLink {
	l := &netLink{conn: c}
	l.live.Store(true)
	return l
}

func dialTCP(host string, port int) (*netLink, error) {
	c, err := net.Dial("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("dial tcp: %w", err)
	}
	// Per-line updates are latency sensitive, disable send coalescing.
	if tc, ok := c.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}
	return newNetLink(c), nil
}

func dialUDP(host string, port int) (*netLink, error) {
	c, err := net.Dial("udp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("dial udp: %w", err)
	}
	if uc, ok := c.(*net.UDPConn); ok {
		if err := enableBroadcast(uc); err != nil {
			_ = uc.Close()
			return nil, fmt.Errorf("broadcast option: %w", err)
		}
	}
	return newNetLink(c), nil
}

func enableBroadcast(c *net.UDPConn) error {
	raw, err := c.SyscallConn()
	if err != nil {
		return err
	}
	var serr error
	if err := raw.Control(func(fd uintptr) {
		serr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
	}); err != nil {
		return err
	}
	return serr
}

// SendAll writes the entire buffer. A zero-byte write on a live socket means
// the peer stopped accepting data and fails the transport.
func (l *netLink) SendAll(buf []byte) error {
	for len(buf) > 0 {
		n, err := l.conn.Write(buf)
		if err != nil {
			l.live.Store(false)
			return err
		}
		if n == 0 {
			l.live.Store(false)
			return board.ErrTransportBroken
		}
		buf = buf[n:]
	}
	return nil
}

// Close clears the liveness flag before releasing the handle so a
// concurrently failing sender observes the down state immediately.
func (l *netLink) Close() error {
	l.live.Store(false)
	if l.closed.Swap(true) {
		return nil
	}
	_ = l.conn.Close()
	return nil
}

func (l *netLink) Live() bool { return l.live.Load() }
