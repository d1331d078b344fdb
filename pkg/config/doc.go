// Package config loads client configuration from YAML files.
//
// Configuration covers the drone's network location, the watchdog
// interval, the default movement speed and the protocol log
// destination. All fields are optional; Default returns the values
// for a stock drone in access-point mode.
//
// Example file:
//
//	drone_addr: 192.168.1.1
//	control_port: 5556
//	navdata_port: 5554
//	navdata: true
//	watchdog_interval: 200ms
//	speed: 0.1
//	log_file: flight.cbor
//	log_level: info
package config
