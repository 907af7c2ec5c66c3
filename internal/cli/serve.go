package cli

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hadilasm31/lamiti/internal/metrics"
	"github.com/hadilasm31/lamiti/internal/shop"
)

// NewServeCommand creates the serve command. It keeps the shop open,
// drifts stock levels to simulate a live store, and exposes Prometheus
// metrics over HTTP until interrupted.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		metricsAddr string
		noJitter    bool
	)

	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Run the shop as a long-lived process",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, cfg, cleanup, err := openShop(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg := metrics.NewRegistry()
			reg.Observe(sh.Bus)

			mux := http.NewServeMux()
			mux.Handle("/metrics", reg.Handler())
			srv := &http.Server{Addr: metricsAddr, Handler: mux}

			errCh := make(chan error, 2)
			go func() {
				slog.Info("metrics listening", "addr", metricsAddr)
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			if !noJitter {
				interval := time.Duration(cfg.JitterInterval)
				jitter := shop.NewJitter(sh.Catalog, interval, rand.New(rand.NewSource(time.Now().UnixNano())))
				go func() {
					slog.Info("stock simulation running", "interval", interval)
					if err := jitter.Run(ctx); err != nil {
						errCh <- err
					}
				}()
			}

			select {
			case <-ctx.Done():
				slog.Info("shutting down")
			case err := <-errCh:
				stop()
				shutdownServer(srv)
				return WrapExitError(ExitCommandError, "serve failed", err)
			}

			shutdownServer(srv)
			return nil
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "localhost:9109", "address for the Prometheus metrics endpoint")
	cmd.Flags().BoolVar(&noJitter, "no-jitter", false, "disable the stock drift simulation")

	return cmd
}

func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("metrics server shutdown", "error", err)
	}
}
