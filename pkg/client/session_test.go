package client

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeSender records every line handed to the transport.
type fakeSender struct {
	mu     sync.Mutex
	lines  []string
	err    error
	closed bool
}

func (f *fakeSender) Send(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, string(data))
	return f.err
}

func (f *fakeSender) LocalAddr() net.Addr {
	return &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 5556}
}

func (f *fakeSender) RemoteAddr() net.Addr {
	return &net.UDPAddr{IP: net.IPv4(192, 168, 1, 1), Port: 5556}
}

func (f *fakeSender) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lines)
}

func (f *fakeSender) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...)
}

func (f *fakeSender) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeSender) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// parseSeq extracts the sequence number from a wire line.
func parseSeq(t *testing.T, line string) uint32 {
	t.Helper()
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		t.Fatalf("malformed line %q", line)
	}
	rest := strings.TrimSuffix(line[eq+1:], "\r")
	if comma := strings.IndexByte(rest, ','); comma >= 0 {
		rest = rest[:comma]
	}
	seq, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		t.Fatalf("bad sequence in %q: %v", line, err)
	}
	return uint32(seq)
}

// openQuiet opens a session whose watchdog will not fire during the
// test.
func openQuiet(t *testing.T, sender *fakeSender) *Session {
	t.Helper()
	s, err := Open(Config{Sender: sender, WatchdogInterval: time.Hour})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenValidation(t *testing.T) {
	if _, err := Open(Config{}); err == nil {
		t.Error("Open without sender should fail")
	}
	if _, err := Open(Config{Sender: &fakeSender{}, Speed: 1.5}); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("Open with speed 1.5 = %v, want ErrInvalidSpeed", err)
	}
	if _, err := Open(Config{Sender: &fakeSender{}, Speed: -0.1}); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("Open with speed -0.1 = %v, want ErrInvalidSpeed", err)
	}
}

func TestSequenceContiguous(t *testing.T) {
	sender := &fakeSender{}
	s := openQuiet(t, sender)

	ops := []func() error{
		s.TakeOff,
		s.Hover,
		s.MoveForward,
		s.TurnLeft,
		func() error { return s.SetConfig("general:navdata_demo", "TRUE") },
		func() error { return s.Animate(18, 2) },
		s.FlatTrim,
		s.Land,
	}
	for i, op := range ops {
		if err := op(); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
	}

	lines := sender.snapshot()
	if len(lines) != len(ops) {
		t.Fatalf("sent %d lines, want %d", len(lines), len(ops))
	}
	for i, line := range lines {
		if got, want := parseSeq(t, line), uint32(i+1); got != want {
			t.Errorf("line %d seq = %d, want %d (%q)", i, got, want, line)
		}
	}
}

func TestSequenceContiguousUnderConcurrency(t *testing.T) {
	sender := &fakeSender{}
	s, err := Open(Config{Sender: sender, WatchdogInterval: 5 * time.Millisecond})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	const goroutines = 4
	const opsEach = 25

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < opsEach; i++ {
				if err := s.Hover(); err != nil {
					t.Errorf("Hover: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
	s.Close()

	// Caller sends and interleaved watchdog keep-alives must together
	// form one contiguous run starting at 1.
	lines := sender.snapshot()
	if len(lines) < goroutines*opsEach {
		t.Fatalf("sent %d lines, want at least %d", len(lines), goroutines*opsEach)
	}
	for i, line := range lines {
		if got, want := parseSeq(t, line), uint32(i+1); got != want {
			t.Fatalf("line %d seq = %d, want %d (%q)", i, got, want, line)
		}
	}
}

func TestTransportErrorAdvancesSequence(t *testing.T) {
	sender := &fakeSender{}
	s := openQuiet(t, sender)

	sender.setErr(errors.New("network unreachable"))
	if err := s.Hover(); err == nil {
		t.Fatal("Hover should surface the transport error")
	}

	sender.setErr(nil)
	if err := s.Hover(); err != nil {
		t.Fatalf("Hover: %v", err)
	}

	lines := sender.snapshot()
	if len(lines) != 2 {
		t.Fatalf("sent %d lines, want 2", len(lines))
	}
	// The failed attempt consumed sequence number 1.
	if parseSeq(t, lines[0]) != 1 || parseSeq(t, lines[1]) != 2 {
		t.Errorf("sequence after transport error = %q %q", lines[0], lines[1])
	}
}

func TestUseAfterClose(t *testing.T) {
	sender := &fakeSender{}
	s, err := Open(Config{Sender: sender, WatchdogInterval: time.Hour})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !sender.isClosed() {
		t.Error("Close must close the transport")
	}
	if s.State() != StateClosed {
		t.Errorf("State = %v, want CLOSED", s.State())
	}

	if err := s.TakeOff(); !errors.Is(err, ErrClosed) {
		t.Errorf("TakeOff after Close = %v, want ErrClosed", err)
	}
	if err := s.SetSpeed(0.5); !errors.Is(err, ErrClosed) {
		t.Errorf("SetSpeed after Close = %v, want ErrClosed", err)
	}

	// Idempotent.
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestSetSpeed(t *testing.T) {
	sender := &fakeSender{}
	s := openQuiet(t, sender)

	if err := s.SetSpeed(1.1); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("SetSpeed(1.1) = %v, want ErrInvalidSpeed", err)
	}
	if err := s.SetSpeed(-0.1); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("SetSpeed(-0.1) = %v, want ErrInvalidSpeed", err)
	}
	if err := s.SetSpeed(0.5); err != nil {
		t.Fatalf("SetSpeed(0.5): %v", err)
	}
	if got := s.Speed(); got != 0.5 {
		t.Errorf("Speed = %v, want 0.5", got)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "IDLE"},
		{StateDispatching, "DISPATCHING"},
		{StateClosed, "CLOSED"},
		{State(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestNavdataWithoutReceiver(t *testing.T) {
	sender := &fakeSender{}
	s := openQuiet(t, sender)

	if _, ok := s.Navdata(); ok {
		t.Error("Navdata should report no data without a receiver")
	}
}
