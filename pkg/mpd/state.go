package mpd

// State is the connection state of a Client.
type State uint8

const (
	// StateDisconnected means no connection exists, or it was closed.
	StateDisconnected State = iota
	// StateAwaitingCommand means the connection is idle on our side and the
	// next job can be written immediately.
	StateAwaitingCommand
	// StateIdling means an idle command is outstanding.
	StateIdling
	// StateExecuting means a job's command is on the wire.
	StateExecuting
	// StateFailed means the connection broke; the client is unusable.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateAwaitingCommand:
		return "AWAITING_COMMAND"
	case StateIdling:
		return "IDLING"
	case StateExecuting:
		return "EXECUTING"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}
