package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
)

var (
	ErrInvalidBaseURL = errors.New("invalid API base URL")
	ErrNilTokenStore  = errors.New("token store is required")
	ErrEncodeBody     = errors.New("failed to encode request body")
	ErrDecodeBody     = errors.New("failed to decode response body")
	ErrTransport      = errors.New("request to API failed")
	ErrTokenStore     = errors.New("failed to access persisted token")
)

// HTTPError is returned for every non-2xx response. Status and the server payload
// are passed through unmodified.
type HTTPError struct {
	Status  int
	Message string
	// Errors holds per-field validation messages ({"email": ["has already been taken"]}).
	Errors map[string][]string
	// Detail carries the server's "error" field when present.
	Detail string
	Body   []byte
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Detail
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("api: %d: %s", e.Status, msg)
}

// Unauthorized reports whether the API rejected the credentials.
func (e *HTTPError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// HasFieldErrors reports whether the server returned a validation payload.
func (e *HTTPError) HasFieldErrors() bool {
	return len(e.Errors) > 0
}

// FieldErrors flattens validation messages into "field: message" lines, sorted by field.
func (e *HTTPError) FieldErrors() []string {
	return FlattenFieldErrors(e.Errors)
}

// AsHTTPError unwraps err into an *HTTPError.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err carries a 401 response.
func IsUnauthorized(err error) bool {
	httpErr, ok := AsHTTPError(err)
	return ok && httpErr.Unauthorized()
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	if httpErr, ok := AsHTTPError(err); ok {
		return httpErr.Status
	}
	return 0
}

// LogLevel picks the level for logging err. Client errors are expected outcomes:
// a 401 is logged at debug because the adapter already warned while clearing the
// session, other 4xx responses at warn. Transport, decode and 5xx failures are errors.
func LogLevel(err error) slog.Level {
	switch status := StatusCode(err); {
	case status == http.StatusUnauthorized:
		return slog.LevelDebug
	case status >= 400 && status < 500:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// errorPayload is the error shape produced by the API.
type errorPayload struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

func newHTTPError(status int, body []byte) *HTTPError {
	e := &HTTPError{Status: status, Body: body}

	var p errorPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return e
	}
	e.Message = p.Message
	e.Detail = p.Error
	e.Errors = parseFieldErrors(p.Errors)

	return e
}

// parseFieldErrors accepts {"f": ["a","b"]}, {"f": "a"} or a bare string.
func parseFieldErrors(raw json.RawMessage) map[string][]string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var many map[string][]string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}

	var single map[string]string
	if err := json.Unmarshal(raw, &single); err == nil {
		out := make(map[string][]string, len(single))
		for k, v := range single {
			out[k] = []string{v}
		}
		return out
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil && text != "" {
		return map[string][]string{"error": {text}}
	}

	return nil
}

// FlattenFieldErrors renders a validation payload as sorted "field: message" lines.
func FlattenFieldErrors(fields map[string][]string) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var out []string
	for _, k := range keys {
		for _, msg := range fields[k] {
			if strings.TrimSpace(msg) == "" {
				continue
			}
			out = append(out, k+": "+msg)
		}
	}
	return out
}
