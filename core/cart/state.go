package cart

// State is the outcome of the most recent fetch cycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	// StateEmpty means there is no token and the cart was reset locally.
	StateEmpty
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateEmpty:
		return "empty"
	default:
		return "idle"
	}
}
