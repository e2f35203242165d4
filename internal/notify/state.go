package notify

// State represents the lifecycle state of the client connection.
type State int

const (
	// StateDisconnected means no transport exists and none is being created.
	StateDisconnected State = iota

	// StateConnecting means a transport is being established.
	StateConnecting

	// StateConnected means the transport is open and frames flow.
	StateConnected

	// StateDisconnecting means a user-initiated close is in flight.
	StateDisconnecting
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	default:
		return "unknown"
	}
}
