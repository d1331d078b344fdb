package transport

import (
	"fmt"
	"net"
	"sync"
)

// Well-known drone addresses and ports.
const (
	// DefaultDroneAddr is the drone's fixed address in its own access
	// point network.
	DefaultDroneAddr = "192.168.1.1"

	// ControlPort receives AT command datagrams.
	ControlPort = 5556

	// NavdataPort streams telemetry datagrams.
	NavdataPort = 5554

	// VideoPort streams video datagrams.
	VideoPort = 5555
)

// Sender is the outbound sink for finished wire lines. Send hands one
// datagram to the network; it reports local errors only, never delivery.
// Implemented by UDPSender.
type Sender interface {
	// Send transmits data as a single datagram.
	Send(data []byte) error

	// LocalAddr returns the local network address.
	LocalAddr() net.Addr

	// RemoteAddr returns the drone's control address.
	RemoteAddr() net.Addr

	// Close releases the socket. Safe to call more than once.
	Close() error
}

// UDPSender sends datagrams over a single connected UDP socket. It is
// safe for concurrent use; pkg/client serializes sends anyway, but the
// socket does not rely on that.
type UDPSender struct {
	conn *net.UDPConn

	mu     sync.Mutex
	closed bool
}

// Dial opens a UDP socket connected to the given control address, e.g.
// "192.168.1.1:5556".
func Dial(address string) (*UDPSender, error) {
	raddr, err := net.ResolveUDPAddr("udp4", address)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", address, err)
	}
	conn, err := net.DialUDP("udp4", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("dial %q: %w", address, err)
	}
	return &UDPSender{conn: conn}, nil
}

// DialDefault opens a sender to the drone's well-known control address.
func DialDefault() (*UDPSender, error) {
	return Dial(fmt.Sprintf("%s:%d", DefaultDroneAddr, ControlPort))
}

// Send transmits data as a single datagram. There is no retry and no
// confirmation; an error means the local write failed.
func (s *UDPSender) Send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return net.ErrClosed
	}
	if _, err := s.conn.Write(data); err != nil {
		return fmt.Errorf("send datagram: %w", err)
	}
	return nil
}

// LocalAddr returns the local address of the socket.
func (s *UDPSender) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

// RemoteAddr returns the drone's control address.
func (s *UDPSender) RemoteAddr() net.Addr {
	return s.conn.RemoteAddr()
}

// Close releases the socket. Subsequent Send calls fail with
// net.ErrClosed.
func (s *UDPSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

// Compile-time interface satisfaction check.
var _ Sender = (*UDPSender)(nil)
