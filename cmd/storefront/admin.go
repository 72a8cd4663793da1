package main

import (
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/app/storefront"
	"github.com/dmitrymomot/storefront/core/catalog"
)

func (s *shell) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage products (admin only)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := s.open(cmd, args); err != nil {
				return err
			}
			if err := s.guard(cmd.Context(), storefront.AccessAdmin); err != nil {
				s.close()
				return err
			}
			return nil
		},
	}
	cmd.AddCommand(s.adminProductsCmd(), s.adminCreateCmd(), s.adminUpdateCmd(), s.adminDeleteCmd())
	return cmd
}

func (s *shell) adminProductsCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products with stock and images",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, _ []string) error {
			p, err := s.app.Catalog().List(cmd.Context(), page)
			if err != nil {
				return err
			}
			s.printProducts(p, true)
			return nil
		}),
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

type productFlags struct {
	name        string
	price       string
	stock       int
	description string
	image       string
}

func (f *productFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "product name")
	cmd.Flags().StringVar(&f.price, "price", "", "unit price")
	cmd.Flags().IntVar(&f.stock, "stock", 0, "units in stock")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.image, "image", "", "path to a png, jpg or webp image (max 2MB)")
}

func (f *productFlags) input() (catalog.ProductInput, error) {
	price, err := decimal.NewFromString(f.price)
	if err != nil {
		return catalog.ProductInput{}, err
	}
	in := catalog.ProductInput{
		Name:        f.name,
		Price:       price,
		Stock:       f.stock,
		Description: f.description,
	}
	if err := f.attachImage(&in); err != nil {
		return catalog.ProductInput{}, err
	}
	return in, nil
}

// merge starts from the current product, like the pre-filled edit form, and
// applies only the flags that were set on the command line.
func (f *productFlags) merge(cmd *cobra.Command, current catalog.Product) (catalog.ProductInput, error) {
	in := catalog.ProductInput{
		Name:        current.Name,
		Price:       current.Price,
		Stock:       current.Stock,
		Description: current.Description,
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		in.Name = f.name
	}
	if flags.Changed("price") {
		price, err := decimal.NewFromString(f.price)
		if err != nil {
			return catalog.ProductInput{}, err
		}
		in.Price = price
	}
	if flags.Changed("stock") {
		in.Stock = f.stock
	}
	if flags.Changed("description") {
		in.Description = f.description
	}
	if err := f.attachImage(&in); err != nil {
		return catalog.ProductInput{}, err
	}
	return in, nil
}

func (f *productFlags) attachImage(in *catalog.ProductInput) error {
	if f.image == "" {
		return nil
	}
	data, err := os.ReadFile(f.image)
	if err != nil {
		return err
	}
	in.Image = catalog.NewImage(f.image, data)
	return nil
}

func (s *shell) adminCreateCmd() *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, _ []string) error {
			in, err := f.input()
			if err != nil {
				return err
			}
			p, err := s.app.Catalog().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			s.confirm("Created product #%d %s", p.ID, p.Name)
			return nil
		}),
	}
	f.bind(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func (s *shell) adminUpdateCmd() *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a product; omitted flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := s.app.Catalog().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			in, err := f.merge(cmd, current)
			if err != nil {
				return err
			}
			if _, err := s.app.Catalog().Update(cmd.Context(), id, in); err != nil {
				return err
			}
			s.confirm("Updated product #%d", id)
			return nil
		}),
	}
	f.bind(cmd)
	return cmd
}

func (s *shell) adminDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := s.app.Catalog().Delete(cmd.Context(), id); err != nil {
				return err
			}
			s.confirm("Deleted product #%d", id)
			return nil
		}),
	}
}
