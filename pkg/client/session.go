package client

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ardrone-protocol/ardrone-go/pkg/log"
	"github.com/ardrone-protocol/ardrone-go/pkg/navdata"
	"github.com/ardrone-protocol/ardrone-go/pkg/transport"
	"github.com/ardrone-protocol/ardrone-go/pkg/wire"
)

// Session defaults.
const (
	// DefaultWatchdogInterval is the maximum idle time before the
	// keep-alive re-issues a no-op command.
	DefaultWatchdogInterval = 200 * time.Millisecond

	// DefaultSpeed is the initial relative movement speed.
	DefaultSpeed = 0.1

	// initialSeq is the sequence number of the first line sent.
	initialSeq = 1
)

// Session errors.
var (
	// ErrClosed reports an operation on a closed session.
	ErrClosed = errors.New("session closed")

	// ErrInvalidSpeed reports a speed outside [0, 1].
	ErrInvalidSpeed = errors.New("speed must be in [0, 1]")
)

// Config configures a Session.
type Config struct {
	// Sender is the outbound transport. Required. The session owns it
	// after a successful Open and closes it on Close.
	Sender transport.Sender

	// WatchdogInterval is the keep-alive interval (default: 200ms).
	WatchdogInterval time.Duration

	// Speed is the initial relative movement speed in [0, 1]
	// (default: 0.1).
	Speed float32

	// NavdataAddr enables the telemetry receiver when non-empty, e.g.
	// "192.168.1.1:5554".
	NavdataAddr string

	// NavdataListenAddr is the local navdata bind address
	// (default: ":5554").
	NavdataListenAddr string

	// ProtocolLogger receives a protocol event per send and state
	// change. Nil disables protocol logging.
	ProtocolLogger log.Logger

	// Logger is the operational side channel; the watchdog reports its
	// own send failures here since it has no caller. Nil disables it.
	Logger *slog.Logger
}

// Session is the single stateful object a caller holds: it owns the
// sequence number, the movement speed, the watchdog timer and the
// transport. All methods are safe for concurrent use; sends are
// serialized by the session mutex.
type Session struct {
	id     string
	sender transport.Sender
	nav    *navdata.Receiver
	plog   log.Logger
	logger *slog.Logger

	mu       sync.Mutex
	state    State
	seq      uint32
	speed    float32
	interval time.Duration
	watchdog *time.Timer
}

// Open starts a session on the given transport: it arms the watchdog,
// starts the telemetry receiver when configured, and hands back the
// session in the IDLE state. If Open fails the caller keeps ownership
// of cfg.Sender.
func Open(cfg Config) (*Session, error) {
	if cfg.Sender == nil {
		return nil, errors.New("client: Config.Sender is required")
	}
	if cfg.WatchdogInterval <= 0 {
		cfg.WatchdogInterval = DefaultWatchdogInterval
	}
	if cfg.Speed == 0 {
		cfg.Speed = DefaultSpeed
	}
	if cfg.Speed < 0 || cfg.Speed > 1 {
		return nil, ErrInvalidSpeed
	}
	plog := cfg.ProtocolLogger
	if plog == nil {
		plog = log.NoopLogger{}
	}

	s := &Session{
		id:       uuid.NewString(),
		sender:   cfg.Sender,
		plog:     plog,
		logger:   cfg.Logger,
		state:    StateIdle,
		seq:      initialSeq,
		speed:    cfg.Speed,
		interval: cfg.WatchdogInterval,
	}

	if cfg.NavdataAddr != "" {
		listen := cfg.NavdataListenAddr
		if listen == "" {
			listen = fmt.Sprintf(":%d", transport.NavdataPort)
		}
		s.nav = navdata.NewReceiver(navdata.ReceiverConfig{
			DroneAddr:  cfg.NavdataAddr,
			ListenAddr: listen,
			SessionID:  s.id,
			Logger:     plog,
		})
		if err := s.nav.Start(); err != nil {
			return nil, fmt.Errorf("start navdata receiver: %w", err)
		}
	}

	s.mu.Lock()
	s.watchdog = time.AfterFunc(s.interval, s.watchdogFire)
	s.mu.Unlock()

	s.logState("", StateIdle, "session open")
	return s, nil
}

// ID returns the session's unique identifier, as used in protocol log
// events.
func (s *Session) ID() string {
	return s.id
}

// State returns the current dispatcher state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Speed returns the current relative movement speed.
func (s *Session) Speed() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

// SetSpeed sets the relative movement speed used by the directional
// move and turn operations.
func (s *Session) SetSpeed(speed float32) error {
	if speed < 0 || speed > 1 {
		return ErrInvalidSpeed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return ErrClosed
	}
	s.speed = speed
	return nil
}

// Navdata returns the latest telemetry snapshot. The second result is
// false until the first packet arrives, or always when the session was
// opened without a telemetry receiver.
func (s *Session) Navdata() (navdata.Navdata, bool) {
	if s.nav == nil {
		return navdata.Navdata{}, false
	}
	return s.nav.Latest()
}

// send runs one command through the dispatcher.
func (s *Session) send(cmd wire.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return ErrClosed
	}
	return s.dispatchLocked(cmd, log.CategoryCommand)
}

// dispatchLocked is the IDLE → DISPATCHING → IDLE path. It must be
// called with the mutex held and the session not closed. The sequence
// number advances and the watchdog rearms regardless of the transport
// outcome.
func (s *Session) dispatchLocked(cmd wire.Command, category log.Category) error {
	s.state = StateDispatching
	if s.watchdog != nil {
		s.watchdog.Stop()
	}

	seq := s.seq
	line := cmd.Line(seq)
	err := s.sender.Send([]byte(line))
	s.seq++

	s.watchdog = time.AfterFunc(s.interval, s.watchdogFire)
	s.state = StateIdle

	event := log.Event{
		Timestamp:  time.Now(),
		SessionID:  s.id,
		Direction:  log.DirectionOut,
		Layer:      log.LayerWire,
		Category:   category,
		RemoteAddr: s.sender.RemoteAddr().String(),
		Command: &log.CommandEvent{
			Name: cmd.Name,
			Seq:  seq,
			Size: len(line),
			Line: line,
		},
	}
	if err != nil {
		event.Category = log.CategoryError
		event.Error = &log.ErrorEventData{Message: err.Error(), Op: "send"}
	}
	s.plog.Log(event)

	if err != nil {
		return fmt.Errorf("send %s: %w", cmd.Name, err)
	}
	return nil
}

// watchdogFire is the timer callback: it re-enters the dispatch path
// with the no-op keep-alive command. Having no caller, it reports
// failures through the side channel and always rearms.
func (s *Session) watchdogFire() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	err := s.dispatchLocked(wire.WatchdogReset(), log.CategoryWatchdog)
	s.mu.Unlock()

	if err != nil && s.logger != nil {
		s.logger.Warn("watchdog keep-alive failed", "session_id", s.id, "error", err)
	}
}

// Close shuts the session down: it cancels the watchdog, stops the
// telemetry receiver and closes the transport. Close waits for any
// in-flight send and is safe to call more than once; operations after
// Close fail with ErrClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return nil
	}
	old := s.state
	s.state = StateClosed
	if s.watchdog != nil {
		s.watchdog.Stop()
		s.watchdog = nil
	}
	s.mu.Unlock()

	s.logState(old.String(), StateClosed, "session close")

	var errs []error
	if s.nav != nil {
		if err := s.nav.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop navdata receiver: %w", err))
		}
	}
	if err := s.sender.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close transport: %w", err))
	}
	return errors.Join(errs...)
}

// logState emits a dispatcher state change event.
func (s *Session) logState(old string, state State, reason string) {
	s.plog.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		Direction: log.DirectionOut,
		Layer:     log.LayerSession,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			OldState: old,
			NewState: state.String(),
			Reason:   reason,
		},
	})
}
