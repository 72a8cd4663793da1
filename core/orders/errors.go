package orders

import "errors"

var (
	ErrNilClient = errors.New("api client is required")
	ErrNoToken   = errors.New("no persisted token")
)

// User-facing messages.
const (
	MsgLoadFailed      = "Failed to load orders"
	MsgLoginToCheckout = "Please login to checkout."
	MsgSessionExpired  = "Session expired. Please login again."
	MsgCheckoutFailed  = "Failed to place order"
	MsgOrderPlaced     = "Order placed successfully!"
	msgCreationFailed  = "Order creation failed: "
)
