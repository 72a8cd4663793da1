package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/core/session"
)

func (s *shell) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, _ []string) error {
			res, err := s.app.Session().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			s.confirm("Signed in as %s <%s>", res.User.Name, res.User.Email)
			s.navigate(res.Landing)
			return nil
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (s *shell) registerCmd() *cobra.Command {
	var p session.RegisterParams
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, _ []string) error {
			res, err := s.app.Session().Register(cmd.Context(), p)
			if err != nil {
				return err
			}
			s.confirm("Welcome, %s", res.User.Name)
			s.navigate(res.Landing)
			return nil
		}),
	}
	cmd.Flags().StringVar(&p.Name, "name", "", "display name")
	cmd.Flags().StringVar(&p.Email, "email", "", "account email")
	cmd.Flags().StringVar(&p.Password, "password", "", "password")
	cmd.Flags().StringVar(&p.PasswordConfirmation, "password-confirmation", "", "password again")
	return cmd
}

func (s *shell) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, _ []string) error {
			s.app.Session().Logout(cmd.Context())
			s.confirm("Signed out")
			return nil
		}),
	}
}

func (s *shell) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, _ []string) error {
			user := s.app.Session().User()
			if user == nil {
				s.println("Not signed in")
				return nil
			}
			role := "customer"
			if user.IsAdmin {
				role = "admin"
			}
			s.printf("%s <%s> (%s)\n", user.Name, user.Email, role)
			sum := s.app.Cart().Summary()
			s.printf("Cart: %d item(s), %s\n", sum.Count, sum.Total.StringFixed(2))
			return nil
		}),
	}
}
