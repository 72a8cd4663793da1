package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/core/apiclient"
	"github.com/dmitrymomot/storefront/core/cart"
	"github.com/dmitrymomot/storefront/core/catalog"
)

func (s *shell) productsCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, _ []string) error {
			p, err := s.app.Catalog().List(cmd.Context(), page)
			if err != nil {
				return err
			}
			s.printProducts(p, false)
			return nil
		}),
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func (s *shell) productCmd() *cobra.Command {
	var add int
	cmd := &cobra.Command{
		Use:   "product <id>",
		Short: "Show a product, optionally adding it to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			p, err := s.app.Catalog().Get(ctx, id)
			if err != nil {
				return err
			}

			s.printf("%s (#%d)\n", p.Name, p.ID)
			s.printf("Price: %s\n", p.Price.StringFixed(2))
			if p.InStock() {
				s.printf("In-Stock: %d units available\n", p.Stock)
			} else {
				s.println("Out of Stock")
			}
			if p.Description != "" {
				s.println(p.Description)
			}
			if !p.CreatedAt.IsZero() {
				s.printf("Added: %s\n", p.CreatedAt.Format("2006-01-02"))
			}

			if add == 0 || !p.InStock() {
				return nil
			}

			qty := catalog.ClampQuantity(add, p.Stock)
			if err := s.app.Cart().Add(ctx, p.ID, qty); err != nil {
				if errors.Is(err, cart.ErrNoToken) {
					s.navigate(apiclient.LoginPath)
				}
				return err
			}
			s.confirm("Added %d × %s to cart", qty, p.Name)
			s.navigate(cartPagePath)
			return nil
		}),
	}
	cmd.Flags().IntVar(&add, "add", 0, "add this many units to the cart (bounded by stock)")
	return cmd
}

const cartPagePath = "/cart"

func (s *shell) printProducts(p catalog.Page, admin bool) {
	if len(p.Data) == 0 {
		s.println("No products found")
		return
	}

	from, to := p.Range()
	s.printf("Showing %d to %d of %d products\n", from, to, p.Total)

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	if admin {
		fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK\tIMAGE")
		for _, it := range p.Data {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", it.ID, it.Name, it.Price.StringFixed(2), it.Stock, it.Image)
		}
	} else {
		fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK\tDESCRIPTION")
		for _, it := range p.Data {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", it.ID, it.Name, it.Price.StringFixed(2), it.Stock, truncate(it.Description, 100))
		}
	}
	_ = tw.Flush()

	if pager := renderPager(catalog.Pagination(p.CurrentPage, p.LastPage)); pager != "" {
		s.println(pager)
	}
}

func renderPager(items []catalog.PageItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		switch it.Kind {
		case catalog.PageItemPrev:
			if !it.Disabled {
				parts = append(parts, "‹")
			}
		case catalog.PageItemNext:
			if !it.Disabled {
				parts = append(parts, "›")
			}
		case catalog.PageItemEllipsis:
			parts = append(parts, "…")
		default:
			if it.Active {
				parts = append(parts, "["+strconv.Itoa(it.Page)+"]")
			} else {
				parts = append(parts, strconv.Itoa(it.Page))
			}
		}
	}
	return strings.Join(parts, " ")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseQuantity(s string) (int, error) {
	q, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	if !cart.ValidQuantity(q) {
		return 0, errors.New("Quantity must be at least 1")
	}
	return q, nil
}
