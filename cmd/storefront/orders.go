package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/app/storefront"
	"github.com/dmitrymomot/storefront/core/orders"
)

func (s *shell) checkoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for everything in the cart",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			order, err := s.app.Orders().Checkout(ctx)
			if err != nil {
				return err
			}

			s.confirm(orders.MsgOrderPlaced)
			if order.ID != 0 {
				s.printf("Order #%d, total %s\n", order.ID, order.TotalAmount.StringFixed(2))
			}

			select {
			case <-ctx.Done():
			case <-time.After(orders.ConfirmationDelay):
			}
			s.navigate(orders.OrdersPagePath)
			return nil
		}),
	}
}

func (s *shell) ordersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List your orders",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := s.guard(ctx, storefront.AccessCustomer); err != nil {
				return err
			}

			list, err := s.app.Orders().List(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				s.println("No orders yet")
				s.println("Start shopping to see your orders here!")
				return nil
			}

			for _, o := range list {
				s.printf("Order #%d  %s  %s  total %s\n",
					o.ID, orders.StatusLabel(o.Status), o.CreatedAt.Local().Format("Jan 2, 2006 15:04"), o.TotalAmount.StringFixed(2))

				tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
				for _, it := range o.Items {
					fmt.Fprintf(tw, "  %s\t%s\t× %d\t%s\n", it.Name(), it.Price.StringFixed(2), it.Quantity, it.Subtotal().StringFixed(2))
				}
				_ = tw.Flush()
			}
			return nil
		}),
	}
}
