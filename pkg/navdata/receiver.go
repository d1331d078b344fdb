package navdata

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/ardrone-protocol/ardrone-go/pkg/log"
)

// trigger is the datagram that makes the drone start streaming navdata
// to the sender's address.
var trigger = []byte{0x01, 0x00, 0x00, 0x00}

// ReceiverConfig configures a navdata Receiver.
type ReceiverConfig struct {
	// DroneAddr is the drone's navdata address, e.g. "192.168.1.1:5554".
	DroneAddr string

	// ListenAddr is the local address to bind, e.g. ":5554". An empty
	// string binds an ephemeral port, which is what tests want.
	ListenAddr string

	// SessionID correlates telemetry events with the control session.
	SessionID string

	// Logger receives a telemetry event per decoded packet. Nil
	// disables protocol logging.
	Logger log.Logger
}

// Receiver listens for navdata datagrams and keeps the most recent
// decoded packet. Stale packets are discarded: Latest always reflects
// the newest telemetry received.
type Receiver struct {
	config ReceiverConfig
	logger log.Logger

	mu         sync.RWMutex
	conn       *net.UDPConn
	latest     Navdata
	fresh      bool
	running    bool
	decodeErrs uint64

	done chan struct{}
}

// NewReceiver creates a navdata receiver. Call Start to begin
// streaming.
func NewReceiver(config ReceiverConfig) *Receiver {
	logger := config.Logger
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Receiver{config: config, logger: logger}
}

// Start binds the local socket, pokes the drone so it starts streaming,
// and launches the read loop.
func (r *Receiver) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("navdata receiver already running")
	}

	laddr, err := net.ResolveUDPAddr("udp4", r.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("resolve listen addr %q: %w", r.config.ListenAddr, err)
	}
	raddr, err := net.ResolveUDPAddr("udp4", r.config.DroneAddr)
	if err != nil {
		return fmt.Errorf("resolve drone addr %q: %w", r.config.DroneAddr, err)
	}

	conn, err := net.ListenUDP("udp4", laddr)
	if err != nil {
		return fmt.Errorf("bind navdata socket: %w", err)
	}

	// Poke the drone so it starts streaming at this socket. If the
	// drone is unreachable the read loop simply stays quiet.
	if _, err := conn.WriteToUDP(trigger, raddr); err != nil {
		conn.Close()
		return fmt.Errorf("send navdata trigger: %w", err)
	}

	r.conn = conn
	r.running = true
	r.done = make(chan struct{})
	go r.loop(conn)

	return nil
}

// loop drains datagrams until the socket is closed, keeping only the
// latest decoded packet.
func (r *Receiver) loop(conn *net.UDPConn) {
	defer close(r.done)

	buf := make([]byte, 65536)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			// Closed by Stop, or the socket died; either way the
			// stream is over.
			return
		}

		nd, err := Decode(buf[:n])
		if err != nil {
			r.mu.Lock()
			r.decodeErrs++
			r.mu.Unlock()
			r.logger.Log(log.Event{
				Timestamp: time.Now(),
				SessionID: r.config.SessionID,
				Direction: log.DirectionIn,
				Layer:     log.LayerTransport,
				Category:  log.CategoryError,
				Error:     &log.ErrorEventData{Message: err.Error(), Op: "navdata decode"},
			})
			continue
		}

		r.mu.Lock()
		r.latest = *nd
		r.fresh = true
		r.mu.Unlock()

		event := log.Event{
			Timestamp: time.Now(),
			SessionID: r.config.SessionID,
			Direction: log.DirectionIn,
			Layer:     log.LayerTransport,
			Category:  log.CategoryTelemetry,
			Telemetry: &log.TelemetryEvent{
				Seq:       nd.Seq,
				Flying:    nd.State.Flying,
				Emergency: nd.State.Emergency,
			},
		}
		if nd.Demo != nil {
			event.Telemetry.Battery = nd.Demo.Battery
			event.Telemetry.Altitude = nd.Demo.Altitude
		}
		r.logger.Log(event)
	}
}

// Latest returns the most recent decoded packet. The second result is
// false until the first packet has been decoded.
func (r *Receiver) Latest() (Navdata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest, r.fresh
}

// DecodeErrors returns the number of datagrams that failed to decode.
func (r *Receiver) DecodeErrors() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.decodeErrs
}

// Stop closes the socket and waits for the read loop to exit. It is
// safe to call more than once.
func (r *Receiver) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	conn := r.conn
	done := r.done
	r.mu.Unlock()

	err := conn.Close()
	<-done
	return err
}
