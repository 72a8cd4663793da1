package tokenstore

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid token store configuration")
	ErrInvalidStoreType = errors.New("invalid token store type")
	ErrEmptyToken       = errors.New("token must not be empty")
	ErrStoreClosed      = errors.New("token store is closed")
	ErrReadStore        = errors.New("failed to read token store")
	ErrWriteStore       = errors.New("failed to write token store")
)
