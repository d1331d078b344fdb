// Package commands implements the ardrone-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/ardrone-protocol/ardrone-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	SessionID string
	Layer     *log.Layer
	Direction *log.Direction
	Category  *log.Category
}

// RunView prints events from the log file in human-readable format.
func RunView(path string, filter ViewFilter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, log.Filter{
		SessionID: filter.SessionID,
		Direction: filter.Direction,
		Layer:     filter.Layer,
		Category:  filter.Category,
	})
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [sess:id] DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	sessID := shortenSessionID(event.SessionID)

	var typeLabel string
	switch {
	case event.Command != nil:
		typeLabel = event.Command.Name
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Telemetry != nil:
		typeLabel = "Navdata"
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	// Watchdog keep-alives are marked in the header
	layerStr := event.Layer.String()
	if event.Category == log.CategoryWatchdog {
		layerStr = "WDG"
	}

	fmt.Fprintf(w, "%s [sess:%s] %-3s %s %s\n", ts, sessID, event.Direction.String(), layerStr, typeLabel)

	switch {
	case event.Command != nil:
		formatCommandDetails(w, event.Command)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Telemetry != nil:
		formatTelemetryDetails(w, event.Telemetry)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatCommandDetails writes command-specific details.
func formatCommandDetails(w io.Writer, cmd *log.CommandEvent) {
	fmt.Fprintf(w, "  Seq: %d\n", cmd.Seq)
	fmt.Fprintf(w, "  Size: %d bytes\n", cmd.Size)
	if cmd.Line != "" {
		fmt.Fprintf(w, "  Line: %s\n", strings.TrimSuffix(cmd.Line, "\r"))
	}
}

// formatStateChangeDetails writes state change details.
func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

// formatTelemetryDetails writes navdata summary details.
func formatTelemetryDetails(w io.Writer, tel *log.TelemetryEvent) {
	fmt.Fprintf(w, "  Seq: %d\n", tel.Seq)
	fmt.Fprintf(w, "  Battery: %d%%  Altitude: %dmm\n", tel.Battery, tel.Altitude)
	fmt.Fprintf(w, "  Flying: %t  Emergency: %t\n", tel.Flying, tel.Emergency)
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, errData *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", errData.Message)
	if errData.Op != "" {
		fmt.Fprintf(w, "  Op: %s\n", errData.Op)
	}
}

// ParseLayerFlag converts a layer name to a log.Layer.
func ParseLayerFlag(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "transport":
		return log.LayerTransport, nil
	case "wire":
		return log.LayerWire, nil
	case "session":
		return log.LayerSession, nil
	default:
		return 0, fmt.Errorf("unknown layer: %s (supported: transport, wire, session)", s)
	}
}

// ParseDirectionFlag converts a direction name to a log.Direction.
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("unknown direction: %s (supported: in, out)", s)
	}
}

// ParseCategoryFlag converts a category name to a log.Category.
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "command":
		return log.CategoryCommand, nil
	case "watchdog":
		return log.CategoryWatchdog, nil
	case "state":
		return log.CategoryState, nil
	case "telemetry":
		return log.CategoryTelemetry, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("unknown category: %s (supported: command, watchdog, state, telemetry, error)", s)
	}
}
