package client

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// awaitCount polls until the sender has recorded at least n lines.
func awaitCount(t *testing.T, sender *fakeSender, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if sender.count() >= n {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("only %d lines sent, want at least %d", sender.count(), n)
}

func TestWatchdogKeepsLinkAlive(t *testing.T) {
	sender := &fakeSender{}
	s, err := Open(Config{Sender: sender, WatchdogInterval: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	// No caller operations: the watchdog alone must keep traffic
	// flowing, one keep-alive per idle interval.
	awaitCount(t, sender, 3)

	for i, line := range sender.snapshot() {
		if !strings.HasPrefix(line, "AT*COMWDG=") {
			t.Errorf("line %d = %q, want a COMWDG keep-alive", i, line)
		}
		if got, want := parseSeq(t, line), uint32(i+1); got != want {
			t.Errorf("keep-alive %d seq = %d, want %d", i, got, want)
		}
	}
}

func TestWatchdogMeasuredFromLastSend(t *testing.T) {
	sender := &fakeSender{}
	s, err := Open(Config{Sender: sender, WatchdogInterval: 150 * time.Millisecond})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	// Caller operations well inside the interval keep pushing the
	// deadline out; the watchdog must never fire.
	for i := 0; i < 10; i++ {
		if err := s.Hover(); err != nil {
			t.Fatalf("Hover: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	for i, line := range sender.snapshot() {
		if strings.HasPrefix(line, "AT*COMWDG=") {
			t.Errorf("line %d is a keep-alive %q; watchdog fired despite steady traffic", i, line)
		}
	}
}

func TestWatchdogSurvivesTransportErrors(t *testing.T) {
	sender := &fakeSender{}
	sender.setErr(errors.New("network unreachable"))

	s, err := Open(Config{Sender: sender, WatchdogInterval: 15 * time.Millisecond})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	// Every keep-alive fails, but the watchdog must keep trying.
	awaitCount(t, sender, 4)
}

func TestCloseStopsWatchdog(t *testing.T) {
	sender := &fakeSender{}
	s, err := Open(Config{Sender: sender, WatchdogInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	awaitCount(t, sender, 1)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// No timer may fire a send past the close boundary.
	before := sender.count()
	time.Sleep(100 * time.Millisecond)
	if after := sender.count(); after != before {
		t.Errorf("%d sends after close", after-before)
	}
}

func TestImmediateCloseLeavesNoTimer(t *testing.T) {
	sender := &fakeSender{}
	s, err := Open(Config{Sender: sender, WatchdogInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	// Close before the first tick: nothing must ever be sent.
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if got := sender.count(); got != 0 {
		t.Errorf("%d sends after immediate close, want 0", got)
	}
}
