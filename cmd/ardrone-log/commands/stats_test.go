package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ardrone-protocol/ardrone-go/pkg/log"
)

func TestRunStats(t *testing.T) {
	base := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	path := writeLog(t,
		log.Event{
			Timestamp: base,
			SessionID: "s1",
			Direction: log.DirectionOut,
			Layer:     log.LayerWire,
			Category:  log.CategoryCommand,
			Command:   &log.CommandEvent{Name: "REF", Seq: 1},
		},
		log.Event{
			Timestamp: base.Add(100 * time.Millisecond),
			SessionID: "s1",
			Direction: log.DirectionOut,
			Layer:     log.LayerWire,
			Category:  log.CategoryWatchdog,
			Command:   &log.CommandEvent{Name: "COMWDG", Seq: 2},
		},
		log.Event{
			Timestamp: base.Add(200 * time.Millisecond),
			SessionID: "s1",
			Direction: log.DirectionIn,
			Layer:     log.LayerTransport,
			Category:  log.CategoryTelemetry,
			Telemetry: &log.TelemetryEvent{Seq: 9, Battery: 72},
		},
		log.Event{
			Timestamp: base.Add(300 * time.Millisecond),
			SessionID: "s1",
			Direction: log.DirectionOut,
			Layer:     log.LayerSession,
			Category:  log.CategoryError,
			Error:     &log.ErrorEventData{Message: "send failed", Op: "send"},
		},
	)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"Total events: 4",
		"Errors:       1",
		"COMMAND",
		"WATCHDOG",
		"TELEMETRY",
		"REF",
		"COMWDG",
		"seq 1-2",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("stats output missing %q:\n%s", want, output)
		}
	}
}

func TestRunStatsEmptyFile(t *testing.T) {
	path := writeLog(t)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats: %v", err)
	}
	if !strings.Contains(buf.String(), "Total events: 0") {
		t.Errorf("expected empty stats, got: %s", buf.String())
	}
}

func TestRunStatsMissingFile(t *testing.T) {
	if err := RunStats("/nonexistent/flight.cbor", &bytes.Buffer{}); err == nil {
		t.Error("RunStats on missing file should fail")
	}
}
