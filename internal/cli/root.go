// Package cli implements the lamiti command line interface. Commands are
// thin: they open the store, wire a shop, call one operation and render
// the result - all state lives in the shop packages.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hadilasm31/lamiti/internal/config"
	"github.com/hadilasm31/lamiti/internal/shop"
	"github.com/hadilasm31/lamiti/internal/storage"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string // path to the store (file for sqlite, dir for pebble)
	Backend  string // "sqlite" | "pebble" | "memory"
	Config   string // optional path to a YAML config file
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidBackends defines the allowed storage backends.
var ValidBackends = []string{"sqlite", "pebble", "memory"}

// NewRootCommand creates the root command for the lamiti CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lamiti",
		Short: "LAMITI SHOP - storefront and back office",
		Long:  "A local storefront: product catalog, cart, checkout and an admin back office, persisted to a local store.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if !contains(ValidBackends, opts.Backend) {
				return fmt.Errorf("invalid backend %q: must be one of %v", opts.Backend, ValidBackends)
			}

			logLevel := slog.LevelWarn
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "lamiti.db", "path to the store (file for sqlite, directory for pebble)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "sqlite", "storage backend (sqlite|pebble|memory)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to a YAML config file")

	cmd.AddCommand(NewProductCommand(opts))
	cmd.AddCommand(NewCategoryCommand(opts))
	cmd.AddCommand(NewCartCommand(opts))
	cmd.AddCommand(NewCheckoutCommand(opts))
	cmd.AddCommand(NewOrderCommand(opts))
	cmd.AddCommand(NewTrackCommand(opts))
	cmd.AddCommand(NewAdminCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// openStore opens the configured storage backend.
func openStore(opts *RootOptions) (storage.Store, error) {
	switch opts.Backend {
	case "pebble":
		return storage.OpenPebble(opts.Database)
	case "memory":
		return storage.NewMemory(), nil
	default:
		return storage.Open(opts.Database)
	}
}

// openShop opens the store, loads config and wires a full shop.
// The returned cleanup closes the store.
func openShop(opts *RootOptions) (*shop.Shop, config.Config, func(), error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, config.Config{}, nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	st, err := openStore(opts)
	if err != nil {
		return nil, config.Config{}, nil, WrapExitError(ExitCommandError, "failed to open store", err)
	}

	sh, err := shop.New(st, shop.Options{
		DeliveryDays:      cfg.Delivery.StandardDays,
		LowStockThreshold: cfg.LowStockThreshold,
		AdminUsername:     cfg.Admin.Username,
		AdminPassword:     cfg.Admin.Password,
		SessionTTL:        time.Duration(cfg.Admin.SessionTimeout),
	})
	if err != nil {
		st.Close()
		return nil, config.Config{}, nil, WrapExitError(ExitCommandError, "failed to load shop state", err)
	}

	cleanup := func() {
		if err := st.Close(); err != nil {
			slog.Error("error closing store", "error", err)
		}
	}
	return sh, cfg, cleanup, nil
}

// formatterFor builds an OutputFormatter writing to the command's stdout.
func formatterFor(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}
