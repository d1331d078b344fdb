// Package transport provides the outbound datagram path to the drone.
//
// The AR.Drone control protocol is fire-and-forget UDP: one AT command
// line per datagram, no acknowledgement, no retry, no delivery
// guarantee. The drone's own communication watchdog is the only link
// supervision; keeping it fed is the job of pkg/client, not this layer.
//
// # Protocol Stack
//
//	┌────────────────────────────────┐
//	│      AT command lines          │
//	├────────────────────────────────┤
//	│   one command per datagram     │
//	├────────────────────────────────┤
//	│            UDP                 │
//	└────────────────────────────────┘
//
// # Well-Known Addresses
//
// The drone runs as a WiFi access point at a fixed address and listens
// on fixed ports:
//   - control (AT commands): 5556
//   - navdata (telemetry): 5554
//   - video: 5555
package transport
