// Package wire implements the AR.Drone AT command wire format.
//
// Every command the drone firmware accepts is a single ASCII line sent
// as one UDP datagram:
//
//	AT*<NAME>=<seq>[,<arg>]*\r
//
// There is no checksum, no framing beyond one command per datagram, and
// no trailing newline. The sequence number must increase strictly with
// every line; the firmware silently drops commands whose sequence number
// is not greater than the last one it accepted.
//
// # Argument Rendering
//
// Arguments are typed at the call site and rendered per type:
//
//   - integers: bare decimal
//   - floats: the decimal rendering of the IEEE-754 single-precision
//     bit pattern reinterpreted as a signed 32-bit integer
//   - strings: double-quoted literals
//
// The float rule is the protocol's own, not a convenience: the firmware
// reassembles the transmitted integer's bits back into a float. See
// FloatToInt32.
//
// String arguments are emitted without any escaping of embedded quote
// characters. The firmware's escaping rules are not documented, so this
// package reproduces the raw behavior rather than inventing one.
//
// # Command Catalog
//
// The catalog functions (Ref, Pcmd, FlatTrim, Zap, ConfigSet,
// WatchdogReset, Anim) build Command values without a sequence number;
// the dispatcher in pkg/client supplies one at send time. Pwm and Led
// are reserved entries whose wire format is not established upstream;
// they fail with ErrNotImplemented instead of emitting a malformed line.
package wire
