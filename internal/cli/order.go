package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hadilasm31/lamiti/internal/shop"
)

// NewCheckoutCommand creates the checkout command: it converts the current
// cart into a pending order.
func NewCheckoutCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		name, email, phone string
		address            string
		payment            string
	)

	cmd := &cobra.Command{
		Use:           "checkout",
		Short:         "Create an order from the current cart",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, cfg, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			order, err := sh.Orders.Create(
				shop.Customer{Name: name, Email: email, Phone: phone},
				address,
				shop.PaymentMethod(payment),
			)
			if err != nil {
				return shopError(err)
			}

			f := formatterFor(cmd, rootOpts)
			if f.Format == "json" {
				return f.Success(order)
			}

			var b strings.Builder
			fmt.Fprintf(&b, "order %s created\n", order.ID)
			fmt.Fprintf(&b, "  total:    %s\n", formatPrice(order.Total, cfg.CurrencySymbol))
			fmt.Fprintf(&b, "  tracking: %s\n", order.TrackingCode)
			fmt.Fprintf(&b, "  delivery: %s", order.EstimatedDelivery.Format("2006-01-02"))
			return f.Success(b.String())
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "customer name (required)")
	cmd.Flags().StringVar(&email, "email", "", "customer email (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "customer phone")
	cmd.Flags().StringVar(&address, "address", "", "shipping address (required)")
	cmd.Flags().StringVar(&payment, "payment", "card", "payment method (card|mobile)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}

// NewOrderCommand creates the order command group.
func NewOrderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage order history",
	}

	cmd.AddCommand(newOrderListCommand(rootOpts))
	cmd.AddCommand(newOrderShowCommand(rootOpts))
	cmd.AddCommand(newOrderStatusCommand(rootOpts))
	cmd.AddCommand(newOrderDeleteCommand(rootOpts))

	return cmd
}

func newOrderListCommand(rootOpts *RootOptions) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List orders",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, cfg, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			orders := sh.Orders.All()
			if email != "" {
				orders = sh.Orders.ByCustomerEmail(email)
			}

			f := formatterFor(cmd, rootOpts)
			if f.Format == "json" {
				return f.Success(orders)
			}
			if len(orders) == 0 {
				return f.Success("no orders")
			}

			var b strings.Builder
			for _, o := range orders {
				fmt.Fprintf(&b, "%-42s %-10s %-12s %s\n",
					o.ID, o.Status, o.OrderDate.Format("2006-01-02"), formatPrice(o.Total, cfg.CurrencySymbol))
			}
			return f.Success(strings.TrimRight(b.String(), "\n"))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "filter by customer email")
	return cmd
}

func newOrderShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <order-id>",
		Short:         "Show one order",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, cfg, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			order, ok := sh.Orders.Order(args[0])
			if !ok {
				return shopError(shop.NewNotFoundError("order", args[0]))
			}

			f := formatterFor(cmd, rootOpts)
			if f.Format == "json" {
				return f.Success(order)
			}
			return f.Success(renderOrder(sh, cfg.CurrencySymbol, order))
		},
	}
}

// renderOrder formats an order with its lines. Items referencing a product
// that has since been deleted render as "unknown product" - a documented
// degradation, not an error.
func renderOrder(sh *shop.Shop, symbol string, o shop.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "order %s (%s)\n", o.ID, o.Status)
	fmt.Fprintf(&b, "  customer: %s <%s>\n", o.Customer.Name, o.Customer.Email)
	fmt.Fprintf(&b, "  address:  %s\n", o.ShippingAddress)
	fmt.Fprintf(&b, "  payment:  %s\n", o.PaymentMethod)
	fmt.Fprintf(&b, "  tracking: %s\n", o.TrackingCode)
	for _, item := range o.Items {
		name := "unknown product (" + item.ProductID + ")"
		if p, ok := sh.Catalog.Product(item.ProductID); ok {
			name = p.Name
		}
		fmt.Fprintf(&b, "  - %dx %s\n", item.Quantity, name)
	}
	fmt.Fprintf(&b, "  total:    %s", formatPrice(o.Total, symbol))
	if !o.LastUpdate.IsZero() {
		fmt.Fprintf(&b, "\n  updated:  %s", o.LastUpdate.Format(time.RFC3339))
	}
	return b.String()
}

func newOrderStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "status <order-id> <status>",
		Short:         "Move an order through its lifecycle",
		Long:          "Allowed transitions: pending -> confirmed -> shipped -> delivered, plus cancelled from any non-terminal state.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Orders.UpdateStatus(args[0], shop.OrderStatus(args[1])); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success(args[0] + " -> " + args[1])
		},
	}
}

func newOrderDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <order-id>",
		Short:         "Remove an order from history (stock is not restored)",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Orders.Delete(args[0]); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success("deleted " + args[0])
		},
	}
}

// NewTrackCommand creates the customer-facing tracking lookup.
func NewTrackCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "track <tracking-code>",
		Short:         "Look up an order by tracking code",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, cfg, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			order, ok := sh.Orders.ByTrackingCode(args[0])
			if !ok {
				return shopError(shop.NewNotFoundError("order", args[0]))
			}

			f := formatterFor(cmd, rootOpts)
			if f.Format == "json" {
				return f.Success(order)
			}
			return f.Success(renderOrder(sh, cfg.CurrencySymbol, order))
		},
	}
}
