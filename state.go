package ashkv

// ConnState moves from StateUnknown to either StateConnected or StateFailed
// exactly once. StateFailed is terminal for the Client.
type ConnState int32

const (
	StateUnknown ConnState = iota
	StateConnected
	StateFailed
)

func (s ConnState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
