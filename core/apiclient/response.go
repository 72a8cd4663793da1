package apiclient

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Response is a successful (2xx) API response with its body fully read.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// DecodeJSON unmarshals the response body into T.
func DecodeJSON[T any](resp *Response) (T, error) {
	var v T
	if resp == nil || len(resp.Body) == 0 {
		return v, ErrDecodeBody
	}
	if err := json.Unmarshal(resp.Body, &v); err != nil {
		return v, errors.Join(ErrDecodeBody, err)
	}
	return v, nil
}
