package client

// State represents the dispatcher state.
type State uint8

const (
	// StateIdle indicates the watchdog timer is armed and no send is
	// in progress.
	StateIdle State = iota

	// StateDispatching indicates a send is in progress and the
	// watchdog timer is cancelled.
	StateDispatching

	// StateClosed indicates the session has been closed. No further
	// transitions are possible.
	StateClosed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateDispatching:
		return "DISPATCHING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}
