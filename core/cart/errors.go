package cart

import "errors"

var (
	// ErrNoToken is returned when a cart operation is attempted without a persisted token.
	ErrNoToken = errors.New("no persisted token")
	// ErrNilClient is returned by New when no API client is given.
	ErrNilClient = errors.New("api client is required")
)

// Messages for requests made without a persisted token.
const (
	MsgLoginToAdd    = "Please login to add items to cart"
	MsgLoginToUpdate = "Please login to update cart"
	MsgLoginToRemove = "Please login to remove items"
	MsgLoginToClear  = "Please login to clear cart"
)

// Messages shown when the server supplies none.
const (
	MsgAddFailed    = "Failed to add cart"
	MsgUpdateFailed = "Failed to update cart"
	MsgRemoveFailed = "Failed to remove item"
	MsgClearFailed  = "Failed to clear cart"
)
