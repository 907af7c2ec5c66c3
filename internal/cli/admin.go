package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hadilasm31/lamiti/internal/seed"
	"github.com/hadilasm31/lamiti/internal/shop"
)

// NewAdminCommand creates the admin command group: the back-office surface.
func NewAdminCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Back-office operations",
	}

	cmd.AddCommand(newAdminLoginCommand(rootOpts))
	cmd.AddCommand(newAdminLogoutCommand(rootOpts))
	cmd.AddCommand(newAdminStatsCommand(rootOpts))
	cmd.AddCommand(newAdminLowStockCommand(rootOpts))
	cmd.AddCommand(newAdminSeedCommand(rootOpts))

	return cmd
}

func newAdminLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:           "login",
		Short:         "Open an admin session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Admin.Login(username, password); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success("logged in as " + username)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newAdminLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "Close the admin session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sh.Admin.Logout(); err != nil {
				return shopError(err)
			}
			return formatterFor(cmd, rootOpts).Success("logged out")
		},
	}
}

// requireSession guards admin subcommands that expose back-office data.
func requireSession(sh *shop.Shop) error {
	ok, err := sh.Admin.Valid()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load session", err)
	}
	if !ok {
		return shopError(shop.NewInvalidCredentialsError())
	}
	return nil
}

func newAdminStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "stats",
		Short:         "Show dashboard statistics",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, cfg, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := requireSession(sh); err != nil {
				return err
			}

			dash := sh.Dashboard()
			byCategory := sh.CategoryStats()

			f := formatterFor(cmd, rootOpts)
			if f.Format == "json" {
				return f.Success(struct {
					Dashboard  shop.DashboardStats `json:"dashboard"`
					ByCategory map[string]int      `json:"byCategory"`
				}{dash, byCategory})
			}
			return f.Success(renderStats(dash, byCategory, cfg.CurrencySymbol))
		},
	}
}

// renderStats lays out the dashboard in a fixed order so the output is
// stable across runs.
func renderStats(dash shop.DashboardStats, byCategory map[string]int, symbol string) string {
	var b strings.Builder
	b.WriteString("dashboard\n")
	fmt.Fprintf(&b, "  products:  %d\n", dash.TotalProducts)
	fmt.Fprintf(&b, "  orders:    %d (%d pending, %d delivered)\n",
		dash.TotalOrders, dash.PendingOrders, dash.DeliveredOrders)
	fmt.Fprintf(&b, "  revenue:   %s\n", formatPrice(dash.TotalRevenue, symbol))
	fmt.Fprintf(&b, "  low stock: %d\n", dash.LowStockItems)

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("by category\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-12s %d\n", name, byCategory[name])
	}
	return strings.TrimRight(b.String(), "\n")
}

func newAdminLowStockCommand(rootOpts *RootOptions) *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:           "low-stock",
		Short:         "List active products at or below a stock threshold",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := requireSession(sh); err != nil {
				return err
			}

			products := sh.LowStockProducts(threshold)

			f := formatterFor(cmd, rootOpts)
			if f.Format == "json" {
				return f.Success(products)
			}
			if len(products) == 0 {
				return f.Success("no products below threshold")
			}
			var b strings.Builder
			for _, p := range products {
				fmt.Fprintf(&b, "%-12s %-30s stock %d\n", p.ID, p.Name, p.Stock)
			}
			return f.Success(strings.TrimRight(b.String(), "\n"))
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", 0, "stock threshold (0 uses the configured default)")
	return cmd
}

func newAdminSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Load demo catalog data into the store",
		Long:          "Loads the embedded demo catalog, or a CUE seed file given with --file, validating it against the seed schema first. Existing categories and products are left untouched.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, _, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			var (
				data seed.Seed
			)
			if file != "" {
				data, err = seed.LoadFile(file)
			} else {
				data, err = seed.Default()
			}
			if err != nil {
				return NewExitError(ExitFailure, err.Error())
			}

			added, err := seed.Apply(sh.Catalog, data)
			if err != nil {
				return WrapExitError(ExitFailure, "seed aborted", err)
			}
			return formatterFor(cmd, rootOpts).Success(fmt.Sprintf("seeded %d entries", added))
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CUE seed file (defaults to the embedded demo catalog)")
	return cmd
}
