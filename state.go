package reveal

// State represents the current state of a Reloader.
type State int32

const (
	// StateLoading indicates the Reloader is initializing and has not yet
	// processed any document.
	StateLoading State = iota

	// StateHealthy indicates the Reloader's last document was committed.
	StateHealthy

	// StateDegraded indicates the last document failed. The store keeps its
	// previous valid configuration.
	StateDegraded

	// StateEmpty indicates the initial document failed and nothing has ever
	// been committed by this Reloader. Watching continues.
	StateEmpty
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateHealthy:
		return "healthy"
	case StateDegraded:
		return "degraded"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}
