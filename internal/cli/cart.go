package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewCartCommand creates the cart command group.
func NewCartCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the working cart",
	}

	cmd.AddCommand(newCartShowCommand(rootOpts))
	cmd.AddCommand(newCartAddCommand(rootOpts))
	cmd.AddCommand(newCartRemoveCommand(rootOpts))
	cmd.AddCommand(newCartUpdateCommand(rootOpts))
	cmd.AddCommand(newCartClearCommand(rootOpts))

	return cmd
}

func newCartShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Show cart lines and total",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, cfg, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			lines := sh.Cart.Lines()
			total := sh.Cart.Total()

			f := formatterFor(cmd, rootOpts)
			if f.Format == "json" {
				return f.Success(map[string]any{"lines": lines, "total": total})
			}
			if len(lines) == 0 {
				return f.Success("cart is empty")
			}

			var b strings.Builder
			for _, l := range lines {
				variant := ""
				if l.Size != "" || l.Color != "" {
					variant = fmt.Sprintf(" (%s/%s)", l.Size, l.Color)
				}
				name := l.ProductID
				if p, ok := sh.Catalog.Product(l.ProductID); ok {
					name = p.Name
				} else {
					name += " [unknown product]"
				}
				fmt.Fprintf(&b, "%dx %s%s\n", l.Quantity, name, variant)
			}
			fmt.Fprintf(&b, "total: %s", formatPrice(total, cfg.CurrencySymbol))
			return f.Success(b.String())
		},
	}
}

func newCartAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		quantity    int
		size, color string
	)

	cmd := &cobra.Command{
		Use:           "add <product-id>",
		Short:         "Add a product to the cart",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Cart.Add(args[0], quantity, size, color); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success(
				fmt.Sprintf("added %dx %s (cart: %d items)", quantity, args[0], sh.Cart.ItemCount()))
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity to add")
	cmd.Flags().StringVar(&size, "size", "", "selected size")
	cmd.Flags().StringVar(&color, "color", "", "selected color")
	return cmd
}

func newCartRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	var size, color string

	cmd := &cobra.Command{
		Use:           "remove <product-id>",
		Short:         "Remove the matching line from the cart",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Cart.Remove(args[0], size, color); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success("removed " + args[0])
		},
	}

	cmd.Flags().StringVar(&size, "size", "", "selected size")
	cmd.Flags().StringVar(&color, "color", "", "selected color")
	return cmd
}

func newCartUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		quantity    int
		size, color string
	)

	cmd := &cobra.Command{
		Use:           "update <product-id>",
		Short:         "Overwrite the matching line's quantity",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Cart.UpdateQuantity(args[0], quantity, size, color); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success(
				fmt.Sprintf("%s quantity = %d", args[0], quantity))
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "new quantity (required)")
	cmd.Flags().StringVar(&size, "size", "", "selected size")
	cmd.Flags().StringVar(&color, "color", "", "selected color")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

func newCartClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear",
		Short:         "Empty the cart",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Cart.Clear(); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success("cart cleared")
		},
	}
}
