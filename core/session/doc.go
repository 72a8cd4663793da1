// Package session keeps the signed-in identity of a storefront client.
//
// The persisted bearer token (see core/tokenstore) is the single source of truth.
// A Manager derives its state from it on Initialize, probing the current-user
// endpoint, and follows every later change through Watch, so a logout performed
// by another process sharing the same store is observed locally.
//
// # Lifecycle
//
//	mgr, err := session.New(client, session.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	switch mgr.Initialize(ctx) {
//	case session.StateAuthenticated:
//		// mgr.User() is set
//	case session.StateAnonymous:
//		// no token, or the probe failed and the token was cleared
//	}
//	sub := mgr.Subscribe(ctx)
//	go mgr.Watch(ctx, sub)
//
// # Authentication
//
// Login and Register persist the returned token and identity snapshot and
// report the landing path for the user's role. Failures are returned as
// *apiclient.Failure values: the server message when there is one, otherwise
// MsgLoginFailed or MsgRegistrationFailed. Register validates required fields
// and the password confirmation locally before contacting the API.
//
// Logout is best effort on the server side; credentials are always cleared
// and the navigator is sent to the login page.
package session
