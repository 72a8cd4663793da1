package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/app/storefront"
)

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	s := &shell{out: out, errOut: errOut, newApp: storefront.NewApp}
	return s.rootCmd()
}

func (s *shell) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "storefront",
		Short:             "Browse the catalog, manage your cart and place orders",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: s.open,
	}
	root.SetOut(s.out)
	root.SetErr(s.errOut)

	root.AddCommand(
		s.loginCmd(),
		s.registerCmd(),
		s.logoutCmd(),
		s.whoamiCmd(),
		s.productsCmd(),
		s.productCmd(),
		s.cartCmd(),
		s.checkoutCmd(),
		s.ordersCmd(),
		s.adminCmd(),
		s.watchCmd(),
	)
	return root
}

// run wraps a command body: failures are printed as alerts and the app is
// closed whatever the outcome.
func (s *shell) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer s.close()

		err := fn(cmd, args)
		if err != nil && !errors.Is(err, errReported) {
			return s.alert(err)
		}
		return err
	}
}
