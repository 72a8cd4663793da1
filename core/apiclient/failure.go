package apiclient

import "errors"

// Failure is the result value stores return instead of raw transport errors.
// Message is always safe to show to the user; Fields carries the server's
// per-field validation payload when there is one.
type Failure struct {
	Message string
	Fields  map[string][]string
	Err     error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return f.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure converts err into a Failure. The server message wins over fallback;
// network errors and empty payloads fall back to the generic message.
func NewFailure(err error, fallback string) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	out := &Failure{Message: fallback, Err: err}
	if httpErr, ok := AsHTTPError(err); ok {
		if httpErr.Message != "" {
			out.Message = httpErr.Message
		}
		out.Fields = httpErr.Errors
	}
	return out
}

// LocalFailure builds a Failure that never reached the network.
func LocalFailure(message string, err error) *Failure {
	return &Failure{Message: message, Err: err}
}

// AsFailure unwraps err into a *Failure.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
