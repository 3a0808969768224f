package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/turtlefmt/internal/watch"
	"github.com/geoknoesis/turtlefmt/rdf"
)

func newWatchCommand(opts *options) *cobra.Command {
	var (
		metricsAddr string
		debounce    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch [dirs...]",
		Short: "Re-format .ttl files in place whenever they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, logger, err := opts.formatter(cmd)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"."}
			}

			cfg := watch.DefaultConfig()
			cfg.Debounce = debounce
			metrics := watch.NewMetrics()
			handle := func(ctx context.Context, path string) error {
				result, err := formatFile(ctx, f, path, rdf.FormatTurtle)
				if err != nil {
					return err
				}
				return result.save()
			}
			w, err := watch.New(cfg, handle, metrics, logger)
			if err != nil {
				return err
			}
			for _, dir := range args {
				if err := w.Add(dir); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if metricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", metrics.Handler())
				server := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("metrics server failed", "addr", metricsAddr, "error", err)
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = server.Shutdown(shutdownCtx)
				}()
				logger.Info("serving metrics", "addr", metricsAddr)
			}

			logger.Info("watching", "dirs", args, "debounce", debounce)
			return w.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Address serving prometheus metrics on /metrics, e.g. :9090")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultConfig().Debounce, "Time to collect changes before formatting")
	return cmd
}
