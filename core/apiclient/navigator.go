package apiclient

// LoginPath is the login entry point the client navigates to after a 401.
const LoginPath = "/login"

// Navigator performs view-level navigation requested by the data layer.
type Navigator interface {
	Redirect(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Redirect implements Navigator.
func (f NavigatorFunc) Redirect(path string) { f(path) }

type nopNavigator struct{}

func (nopNavigator) Redirect(string) {}

// NopNavigator ignores navigation requests.
var NopNavigator Navigator = nopNavigator{}
