// Package orders lists a customer's orders and places new ones from the cart.
//
// Checkout failures are mapped to user-facing messages: a missing token asks
// the user to log in, a 401 reports an expired session, and a server error
// mentioning quantity is reported as a failed order creation with the server's
// detail. Everything else shows the server message or MsgCheckoutFailed.
package orders
