package storefront

import (
	"context"

	"github.com/dmitrymomot/storefront/core/apiclient"
	"github.com/dmitrymomot/storefront/core/session"
)

// Access is the level a page requires.
type Access int

const (
	AccessPublic Access = iota
	// AccessCustomer requires a persisted token.
	AccessCustomer
	// AccessAdmin requires an authenticated admin identity and a persisted token.
	AccessAdmin
)

// Authorize reports whether the current session may open a page with the given
// access level. When it may not, redirect is where the caller should go instead.
func (a *App) Authorize(ctx context.Context, access Access) (redirect string, ok bool) {
	if access == AccessPublic {
		return "", true
	}

	token, err := a.tokens.Token(ctx)
	if err != nil || token == "" {
		return apiclient.LoginPath, false
	}
	if access == AccessCustomer {
		return "", true
	}

	user := a.session.User()
	if !a.session.IsAuthenticated() || user == nil {
		return apiclient.LoginPath, false
	}
	if !user.IsAdmin {
		return session.CustomerLandingPath, false
	}
	return "", true
}
