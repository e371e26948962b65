package tmi

type State int32

const (
	Idle State = iota
	Connecting
	Authenticating
	Joining
	Ready
	Closing
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connecting:
		return "connecting"
	case Authenticating:
		return "authenticating"
	case Joining:
		return "joining"
	case Ready:
		return "ready"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	}
	return "unknown"
}
