package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hadilasm31/lamiti/internal/shop"
)

// NewProductCommand creates the product command group.
func NewProductCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage catalog products",
	}

	cmd.AddCommand(newProductListCommand(rootOpts))
	cmd.AddCommand(newProductShowCommand(rootOpts))
	cmd.AddCommand(newProductAddCommand(rootOpts))
	cmd.AddCommand(newProductUpdateCommand(rootOpts))
	cmd.AddCommand(newProductDeleteCommand(rootOpts))
	cmd.AddCommand(newProductToggleCommand(rootOpts))
	cmd.AddCommand(newProductSetStockCommand(rootOpts))

	return cmd
}

func newProductListCommand(rootOpts *RootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List storefront products",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, cfg, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			products := sh.Catalog.ActiveProducts()
			if all {
				products = sh.Catalog.Products()
			}

			f := formatterFor(cmd, rootOpts)
			if f.Format == "json" {
				return f.Success(products)
			}
			if len(products) == 0 {
				return f.Success("no products")
			}

			var b strings.Builder
			for _, p := range products {
				status := ""
				if !p.Active {
					status = " [inactive]"
				}
				fmt.Fprintf(&b, "%-14s %-28s %-12s stock=%-4d %s%s\n",
					p.ID, p.Name, p.Category, p.Stock, formatPrice(p.Price, cfg.CurrencySymbol), status)
			}
			return f.Success(strings.TrimRight(b.String(), "\n"))
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include inactive products")
	return cmd
}

func newProductShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <product-id>",
		Short:         "Show one product",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, cfg, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			p, ok := sh.Catalog.Product(args[0])
			if !ok {
				return shopError(shop.NewNotFoundError("product", args[0]))
			}

			f := formatterFor(cmd, rootOpts)
			if f.Format == "json" {
				return f.Success(p)
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%s - %s\n", p.ID, p.Name)
			fmt.Fprintf(&b, "  category: %s/%s\n", p.Category, p.Subcategory)
			fmt.Fprintf(&b, "  price:    %s", formatPrice(p.Price, cfg.CurrencySymbol))
			if p.OnSale && p.OriginalPrice > p.Price {
				fmt.Fprintf(&b, " (was %s)", formatPrice(p.OriginalPrice, cfg.CurrencySymbol))
			}
			fmt.Fprintf(&b, "\n  stock:    %d\n", p.Stock)
			fmt.Fprintf(&b, "  sizes:    %s\n", strings.Join(p.Sizes, ", "))
			fmt.Fprintf(&b, "  colors:   %s\n", strings.Join(p.Colors, ", "))
			fmt.Fprintf(&b, "  active:   %v", p.Active)
			return f.Success(b.String())
		},
	}
}

func newProductAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		name, description, category, subcategory string
		price, originalPrice                     int64
		stock                                    int
		sizes, colors, images                    []string
		featured, onSale                         bool
	)

	cmd := &cobra.Command{
		Use:           "add",
		Short:         "Add a product to the catalog",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := sh.Catalog.AddProduct(shop.Product{
				Name:          name,
				Description:   description,
				Category:      category,
				Subcategory:   subcategory,
				Price:         price,
				OriginalPrice: originalPrice,
				Stock:         stock,
				Sizes:         sizes,
				Colors:        colors,
				Images:        images,
				Featured:      featured,
				OnSale:        onSale,
			})
			if err != nil {
				return shopError(err)
			}

			f := formatterFor(cmd, rootOpts)
			if f.Format == "json" {
				return f.Success(p)
			}
			return f.Success("added " + p.ID)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&description, "description", "", "product description")
	cmd.Flags().StringVar(&category, "category", "", "category name (required)")
	cmd.Flags().StringVar(&subcategory, "subcategory", "", "subcategory name")
	cmd.Flags().Int64Var(&price, "price", 0, "price in the smallest currency unit (required)")
	cmd.Flags().Int64Var(&originalPrice, "original-price", 0, "pre-discount price")
	cmd.Flags().IntVar(&stock, "stock", 0, "initial stock")
	cmd.Flags().StringSliceVar(&sizes, "sizes", nil, "available sizes")
	cmd.Flags().StringSliceVar(&colors, "colors", nil, "available colors")
	cmd.Flags().StringSliceVar(&images, "images", nil, "image references")
	cmd.Flags().BoolVar(&featured, "featured", false, "feature on the landing page")
	cmd.Flags().BoolVar(&onSale, "on-sale", false, "mark as discounted")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newProductUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		name, description, category, subcategory string
		price, originalPrice                     int64
		stock                                    int
		sizes, colors, images                    []string
		active                                   bool
	)

	cmd := &cobra.Command{
		Use:           "update <product-id>",
		Short:         "Update product fields (only changed flags apply)",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			// Only flags the user actually set become part of the
			// partial update.
			var updates shop.ProductUpdate
			if cmd.Flags().Changed("name") {
				updates.Name = &name
			}
			if cmd.Flags().Changed("description") {
				updates.Description = &description
			}
			if cmd.Flags().Changed("category") {
				updates.Category = &category
			}
			if cmd.Flags().Changed("subcategory") {
				updates.Subcategory = &subcategory
			}
			if cmd.Flags().Changed("price") {
				updates.Price = &price
			}
			if cmd.Flags().Changed("original-price") {
				updates.OriginalPrice = &originalPrice
			}
			if cmd.Flags().Changed("stock") {
				updates.Stock = &stock
			}
			if cmd.Flags().Changed("sizes") {
				updates.Sizes = sizes
			}
			if cmd.Flags().Changed("colors") {
				updates.Colors = colors
			}
			if cmd.Flags().Changed("images") {
				updates.Images = images
			}
			if cmd.Flags().Changed("active") {
				updates.Active = &active
			}

			if err := sh.Catalog.UpdateProduct(args[0], updates); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success("updated " + args[0])
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&description, "description", "", "product description")
	cmd.Flags().StringVar(&category, "category", "", "category name")
	cmd.Flags().StringVar(&subcategory, "subcategory", "", "subcategory name")
	cmd.Flags().Int64Var(&price, "price", 0, "price in the smallest currency unit")
	cmd.Flags().Int64Var(&originalPrice, "original-price", 0, "pre-discount price")
	cmd.Flags().IntVar(&stock, "stock", 0, "stock level")
	cmd.Flags().StringSliceVar(&sizes, "sizes", nil, "available sizes")
	cmd.Flags().StringSliceVar(&colors, "colors", nil, "available colors")
	cmd.Flags().StringSliceVar(&images, "images", nil, "image references")
	cmd.Flags().BoolVar(&active, "active", true, "storefront visibility")

	return cmd
}

func newProductDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <product-id>",
		Short:         "Remove a product from the catalog",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Catalog.DeleteProduct(args[0]); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success("deleted " + args[0])
		},
	}
}

func newProductToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "toggle <product-id>",
		Short:         "Flip a product's storefront visibility",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Catalog.ToggleProduct(args[0]); err != nil {
				return shopError(err)
			}
			p, _ := sh.Catalog.Product(args[0])
			state := "inactive"
			if p.Active {
				state = "active"
			}
			return formatterFor(cmd, rootOpts).Success(args[0] + " is now " + state)
		},
	}
}

func newProductSetStockCommand(rootOpts *RootOptions) *cobra.Command {
	var stock int

	cmd := &cobra.Command{
		Use:           "set-stock <product-id>",
		Short:         "Overwrite a product's stock level",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Catalog.SetStock(args[0], stock); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success(fmt.Sprintf("%s stock = %d", args[0], stock))
		},
	}

	cmd.Flags().IntVar(&stock, "stock", 0, "new stock level (required)")
	_ = cmd.MarkFlagRequired("stock")
	return cmd
}
