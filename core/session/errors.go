package session

import "errors"

var (
	// ErrPasswordMismatch is returned by Register when the confirmation differs from the password.
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	// ErrMissingFields is returned by Register when required fields are empty.
	ErrMissingFields = errors.New("required fields are missing")
	// ErrNoToken is returned when the API accepts credentials but returns no token.
	ErrNoToken = errors.New("authentication response has no token")
	// ErrNilClient is returned by New when no API client is given.
	ErrNilClient = errors.New("api client is required")
)

// Messages shown when the server supplies none.
const (
	MsgLoginFailed        = "Login Failed"
	MsgRegistrationFailed = "Registration Failed"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgMissingFields      = "Please fill in all required fields"
)
