// Package link provides the concrete scoreboard transports: TCP and UDP
// sockets and a serial line. All three satisfy board.Transport.
package link

import (
	"fmt"

	"github.com/openvelo/scoreboard/core/board"
)

// Open dials the transport described by the address spec. It is the Opener
// normally injected into a board.Sender.
func Open(a *board.AddrSpec) (board.Transport, error) {
	switch a.Protocol {
	case board.TCP:
		return dialTCP(a.Host, a.Port)
	case board.UDP:
		return dialUDP(a.Host, a.Port)
	case board.Serial:
		return openSerial(a.Device, a.Baud)
	default:
		return nil, fmt.Errorf("unsupported protocol %v", a.Protocol)
	}
}
