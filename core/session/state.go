package session

// State is the authentication state of the client.
type State int

const (
	// StateUnknown means initialization has not resolved yet.
	StateUnknown State = iota
	StateAuthenticated
	StateAnonymous
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}
