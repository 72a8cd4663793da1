package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/app/storefront"
)

func (s *shell) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := s.guard(ctx, storefront.AccessCustomer); err != nil {
				return err
			}
			if err := s.app.Cart().Fetch(ctx); err != nil {
				return err
			}
			s.printCart()
			return nil
		}),
	}

	cmd.AddCommand(s.cartAddCmd(), s.cartUpdateCmd(), s.cartRemoveCmd(), s.cartClearCmd())
	return cmd
}

func (s *shell) cartAddCmd() *cobra.Command {
	var qty int
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := s.app.Cart().Add(cmd.Context(), id, qty); err != nil {
				return err
			}
			s.confirm("Added to cart")
			s.printSummary()
			return nil
		}),
	}
	cmd.Flags().IntVar(&qty, "qty", 1, "quantity")
	return cmd
}

func (s *shell) cartUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <item-id> <quantity>",
		Short: "Change the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			if err := s.app.Cart().Update(cmd.Context(), id, qty); err != nil {
				return err
			}
			s.confirm("Cart updated")
			s.printSummary()
			return nil
		}),
	}
}

func (s *shell) cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := s.app.Cart().Remove(cmd.Context(), id); err != nil {
				return err
			}
			s.confirm("Item removed")
			s.printSummary()
			return nil
		}),
	}
}

func (s *shell) cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, _ []string) error {
			if err := s.app.Cart().Clear(cmd.Context()); err != nil {
				return err
			}
			s.confirm("Cart cleared")
			return nil
		}),
	}
}

func (s *shell) printCart() {
	items := s.app.Cart().Items()
	if len(items) == 0 {
		s.println("Your cart is empty")
		s.println("Add some products to get started!")
		return
	}

	s.printf("Cart Items (%d)\n", len(items))
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tPRODUCT\tPRICE\tQTY\tSUBTOTAL\t")
	for _, it := range items {
		note := ""
		if it.LowStock() {
			note = fmt.Sprintf("only %d in stock", it.Product.Stock)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			it.ID, it.Product.Name, it.Price.StringFixed(2), it.Quantity, it.Subtotal().StringFixed(2), note)
	}
	_ = tw.Flush()
	s.printSummary()
}

func (s *shell) printSummary() {
	sum := s.app.Cart().Summary()
	s.printf("Items: %d  Total: %s\n", sum.Count, sum.Total.StringFixed(2))
}
