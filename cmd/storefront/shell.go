package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/app/storefront"
	"github.com/dmitrymomot/storefront/core/apiclient"
)

// errReported marks a failure that was already printed as an alert.
var errReported = errors.New("command failed")

// shell is the state shared by all commands of one invocation.
type shell struct {
	out    io.Writer
	errOut io.Writer
	app    *storefront.App

	// newApp is replaced in tests.
	newApp func(ctx context.Context, opts ...storefront.AppOption) (*storefront.App, error)
}

func (s *shell) navigator() apiclient.Navigator {
	return apiclient.NavigatorFunc(func(path string) {
		fmt.Fprintf(s.out, "→ %s\n", path)
	})
}

// open builds the app and runs startup. It is called before every command.
func (s *shell) open(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	app, err := s.newApp(ctx,
		storefront.WithNavigator(s.navigator()),
		storefront.WithLogOutput(s.errOut),
	)
	if err != nil {
		return err
	}
	s.app = app
	app.Start(ctx)
	return nil
}

func (s *shell) close() {
	if s.app == nil {
		return
	}
	if err := s.app.Close(); err != nil {
		fmt.Fprintf(s.errOut, "close: %s\n", err)
	}
	s.app = nil
}

// guard enforces page access, printing the redirect when access is denied.
func (s *shell) guard(ctx context.Context, access storefront.Access) error {
	redirect, ok := s.app.Authorize(ctx, access)
	if ok {
		return nil
	}
	s.navigate(redirect)
	return errReported
}

func (s *shell) navigate(path string) {
	s.navigator().Redirect(path)
}

// alert prints err as a user-facing failure and returns errReported.
func (s *shell) alert(err error) error {
	f, ok := apiclient.AsFailure(err)
	if !ok {
		fmt.Fprintf(s.errOut, "✗ %s\n", err)
		return errReported
	}

	fmt.Fprintf(s.errOut, "✗ %s\n", f.Message)
	for _, line := range apiclient.FlattenFieldErrors(f.Fields) {
		fmt.Fprintf(s.errOut, "  - %s\n", line)
	}
	return errReported
}

func (s *shell) confirm(format string, args ...any) {
	fmt.Fprintf(s.out, "✓ "+format+"\n", args...)
}

func (s *shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
