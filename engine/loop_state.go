package engine

// LoopState is the lifecycle stage of a Loop
type LoopState int32

const (
	StateUninitialized LoopState = iota
	StateRunning
	StateTerminating
	StateDisposed
)

// String returns the name of the state
func (s LoopState) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateRunning:
		return "Running"
	case StateTerminating:
		return "Terminating"
	case StateDisposed:
		return "Disposed"
	default:
		return "Unknown"
	}
}
