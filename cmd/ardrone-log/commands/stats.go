package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ardrone-protocol/ardrone-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	CommandsByName    map[string]int
	Errors            int
	Sessions          map[string]*SessionStats
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	FirstSeq  uint32
	LastSeq   uint32
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		CommandsByName:    make(map[string]int),
		Sessions:          make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		collect(stats, event)
	}

	printStats(stats, w)
	return nil
}

func collect(stats *Stats, event log.Event) {
	stats.TotalEvents++
	stats.EventsByCategory[event.Category]++
	stats.EventsByDirection[event.Direction]++

	if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
		stats.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(stats.TimeRange.End) {
		stats.TimeRange.End = event.Timestamp
	}

	sess, ok := stats.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
		}
		stats.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}

	if event.Command != nil {
		stats.CommandsByName[event.Command.Name]++
		if sess.FirstSeq == 0 {
			sess.FirstSeq = event.Command.Seq
		}
		if event.Command.Seq > sess.LastSeq {
			sess.LastSeq = event.Command.Seq
		}
	}
	if event.Error != nil {
		stats.Errors++
	}
}

func printStats(stats *Stats, w io.Writer) {
	fmt.Fprintf(w, "Total events: %d\n", stats.TotalEvents)
	if stats.TotalEvents == 0 {
		return
	}

	fmt.Fprintf(w, "Time range:   %s - %s (%s)\n",
		stats.TimeRange.Start.UTC().Format(time.RFC3339),
		stats.TimeRange.End.UTC().Format(time.RFC3339),
		stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
	fmt.Fprintf(w, "Errors:       %d\n", stats.Errors)

	fmt.Fprintln(w, "\nBy direction:")
	for _, d := range []log.Direction{log.DirectionOut, log.DirectionIn} {
		if n := stats.EventsByDirection[d]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", d.String(), n)
		}
	}

	fmt.Fprintln(w, "\nBy category:")
	categories := []log.Category{
		log.CategoryCommand, log.CategoryWatchdog, log.CategoryState,
		log.CategoryTelemetry, log.CategoryError,
	}
	for _, c := range categories {
		if n := stats.EventsByCategory[c]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", c.String(), n)
		}
	}

	if len(stats.CommandsByName) > 0 {
		fmt.Fprintln(w, "\nCommands:")
		names := make([]string, 0, len(stats.CommandsByName))
		for name := range stats.CommandsByName {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %-10s %d\n", name, stats.CommandsByName[name])
		}
	}

	fmt.Fprintf(w, "\nSessions (%d):\n", len(stats.Sessions))
	ids := make([]string, 0, len(stats.Sessions))
	for id := range stats.Sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		sess := stats.Sessions[id]
		fmt.Fprintf(w, "  %s: %d events, seq %d-%d, %s\n",
			shortenSessionID(id), sess.Events, sess.FirstSeq, sess.LastSeq,
			sess.LastSeen.Sub(sess.FirstSeen).Round(time.Millisecond))
	}
}
