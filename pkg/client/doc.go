// Package client implements the control session: the sequenced,
// watchdog-guarded dispatcher every outbound command passes through.
//
// # Dispatcher State Machine
//
//	         caller op / watchdog fire
//	  ┌────────┐ ───────────────────────► ┌─────────────┐
//	  │  IDLE  │                          │ DISPATCHING │
//	  └────────┘ ◄─────────────────────── └─────────────┘
//	       │       seq++, rearm watchdog
//	       │ Close
//	       ▼
//	  ┌────────┐
//	  │ CLOSED │
//	  └────────┘
//
// Every send, including the watchdog's own keep-alive, runs the same
// IDLE → DISPATCHING → IDLE path under one mutex: cancel the armed
// timer, encode with the current sequence number, hand the line to the
// transport, increment the sequence number, rearm the timer. That is
// what guarantees the two protocol invariants:
//
//   - sequence numbers increase by exactly 1 per line, with no reuse
//     and no gaps, watchdog sends included
//   - the watchdog deadline is always measured from the last actual
//     send, so the link never goes quiet for longer than the interval
//
// The sequence number advances even when the transport write fails: a
// send attempt was made, and the firmware never saw the number, so
// reusing it would be indistinguishable from a replay.
//
// The drone's firmware cuts to its own failsafe hover when it receives
// nothing for ~2 seconds; the default 200 ms interval keeps a wide
// margin under that.
package client
