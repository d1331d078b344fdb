// Package navdata decodes the drone's telemetry stream.
//
// The drone pushes navdata packets over UDP once the client pokes the
// navdata port with a trigger datagram. Each packet carries a 16-byte
// header (magic, 32-bit state word, sequence number, vision flag)
// followed by option blocks:
//
//	(option id u16, block size u16, payload...)
//
// All multi-byte fields are little-endian. Option 0 is the "demo"
// option with the basics: control state, battery percentage, attitude
// (reported in millidegrees), altitude and linear velocities. Unknown
// options are skipped by their declared size.
//
// The Receiver keeps only the most recent decoded packet: telemetry is
// a state stream, not an event stream, and a stale packet has no value
// once a fresher one has arrived.
package navdata
