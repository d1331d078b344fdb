package log

import "time"

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the control session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates datagram flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// RemoteAddr is the drone address (IP:port).
	RemoteAddr string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Command     *CommandEvent     `cbor:"7,keyasint,omitempty"`  // Wire layer
	StateChange *StateChangeEvent `cbor:"8,keyasint,omitempty"`  // Dispatcher state
	Telemetry   *TelemetryEvent   `cbor:"9,keyasint,omitempty"`  // Navdata
	Error       *ErrorEventData   `cbor:"10,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of datagram flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming datagram (telemetry).
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing datagram (command).
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerTransport is the raw datagram layer.
	LayerTransport Layer = 0
	// LayerWire is the AT command encoding layer.
	LayerWire Layer = 1
	// LayerSession is the sequencer/watchdog dispatcher layer.
	LayerSession Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerWire:
		return "WIRE"
	case LayerSession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryCommand indicates a caller-issued command line.
	CategoryCommand Category = 0
	// CategoryWatchdog indicates a watchdog-triggered keep-alive line.
	CategoryWatchdog Category = 1
	// CategoryState indicates a dispatcher state change.
	CategoryState Category = 2
	// CategoryTelemetry indicates a decoded navdata packet.
	CategoryTelemetry Category = 3
	// CategoryError indicates an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCommand:
		return "COMMAND"
	case CategoryWatchdog:
		return "WATCHDOG"
	case CategoryState:
		return "STATE"
	case CategoryTelemetry:
		return "TELEMETRY"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// CommandEvent captures one outbound AT command line at the wire layer.
type CommandEvent struct {
	// Name is the AT command name (REF, PCMD, COMWDG, ...).
	Name string `cbor:"1,keyasint"`

	// Seq is the sequence number the line carried.
	Seq uint32 `cbor:"2,keyasint"`

	// Size is the line length in bytes.
	Size int `cbor:"3,keyasint"`

	// Line is the full wire line, including the trailing CR.
	Line string `cbor:"4,keyasint,omitempty"`
}

// StateChangeEvent captures dispatcher lifecycle transitions.
type StateChangeEvent struct {
	// OldState is the previous state name.
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state name.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// TelemetryEvent captures a decoded navdata packet summary.
type TelemetryEvent struct {
	// Seq is the navdata sequence number reported by the drone.
	Seq uint32 `cbor:"1,keyasint"`

	// Battery is the battery charge percentage, when the demo option
	// was present.
	Battery uint32 `cbor:"2,keyasint,omitempty"`

	// Altitude is the estimated altitude in millimeters.
	Altitude uint32 `cbor:"3,keyasint,omitempty"`

	// Flying reports the firmware's fly mask bit.
	Flying bool `cbor:"4,keyasint,omitempty"`

	// Emergency reports the firmware's emergency bit.
	Emergency bool `cbor:"5,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Op names the operation that failed (send, decode, ...).
	Op string `cbor:"2,keyasint,omitempty"`
}
