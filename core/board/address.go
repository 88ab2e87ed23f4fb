package board

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Protocol selects one of the supported transports.
type Protocol int

const (
	TCP Protocol = iota
	UDP
	Serial
)

func (p Protocol) String() string {
	switch p {
	case TCP:
		return "tcp"
	case UDP:
		return "udp"
	case Serial:
		return "serial"
	default:
		return "unknown"
	}
}

// Default ports for the scoreboard protocols.
const (
	DefaultTCPPort = 1946
	DefaultUDPPort = 5060
)

// AddrSpec is the parsed form of a user-supplied connection string. Network
// specs populate Host and Port; serial specs populate Device and Baud.
type AddrSpec struct {
	Protocol Protocol
	Host     string
	Port     int
	Device   string
	Baud     int
}

func (a AddrSpec) String() string {
	if a.Protocol == Serial {
		return fmt.Sprintf("serial:%s@%d", a.Device, a.Baud)
	}
	return fmt.Sprintf("%s:%s:%d", a.Protocol, a.Host, a.Port)
}

// ParseAddr parses a connection string of the form [PROTOCOL:]ADDRESS[:PORT].
// The empty string, "none" and "NULL" mean no connection and yield a nil
// spec. "DEFAULT" substitutes the configured default address string before
// parsing. "DEBUG" is a fixed loopback self-test shortcut (UDP, localhost,
// 5060) that overrides any configured default. An address token containing a
// path separator selects the serial transport with the configured baud rate.
func ParseAddr(spec string, cfg Config) (*AddrSpec, error) {
	if spec == "DEFAULT" {
		spec = cfg.Port
	}
	switch spec {
	case "", "none", "NULL":
		return nil, nil
	case "DEBUG":
		return &AddrSpec{Protocol: UDP, Host: "localhost", Port: DefaultUDPPort}, nil
	}

	parts := strings.Split(spec, ":")
	switch len(parts) {
	case 1:
		if isDevicePath(parts[0]) {
			return &AddrSpec{Protocol: Serial, Device: parts[0], Baud: cfg.Baud}, nil
		}
		return &AddrSpec{Protocol: TCP, Host: parts[0], Port: DefaultTCPPort}, nil
	case 2:
		switch strings.ToLower(parts[0]) {
		case "tcp":
			return &AddrSpec{Protocol: TCP, Host: parts[1], Port: DefaultTCPPort}, nil
		case "udp":
			return &AddrSpec{Protocol: UDP, Host: parts[1], Port: DefaultUDPPort}, nil
		}
		if isDevicePath(parts[0]) {
			// Device paths ignore any supplied port component.
			return &AddrSpec{Protocol: Serial, Device: parts[0], Baud: cfg.Baud}, nil
		}
		port, err := lookupPort("tcp", parts[1])
		if err != nil {
			return nil, err
		}
		return &AddrSpec{Protocol: TCP, Host: parts[0], Port: port}, nil
	case 3:
		var proto Protocol
		switch strings.ToLower(parts[0]) {
		case "tcp":
			proto = TCP
		case "udp":
			proto = UDP
		default:
			return nil, fmt.Errorf("invalid port specification: unknown protocol %q", parts[0])
		}
		port, err := lookupPort(proto.String(), parts[2])
		if err != nil {
			return nil, err
		}
		return &AddrSpec{Protocol: proto, Host: parts[1], Port: port}, nil
	default:
		return nil, fmt.Errorf("invalid port specification: %q", spec)
	}
}

// isDevicePath reports whether the address token names a serial device file.
func isDevicePath(tok string) bool {
	return strings.ContainsRune(tok, '/')
}

// lookupPort parses a decimal port number or resolves a service name through
// the platform service database.
func lookupPort(network, s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 65535 {
			return 0, fmt.Errorf("invalid port specification: %q", s)
		}
		return n, nil
	}
	n, err := net.LookupPort(network, s)
	if err != nil {
		return 0, fmt.Errorf("invalid port specification: %q: %w", s, err)
	}
	return n, nil
}
