package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/viewkit/internal/config"
	"github.com/vango-dev/viewkit/internal/demo"
	"github.com/vango-dev/viewkit/internal/errors"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(load func() (*config.Config, error)) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the todo application.

The page at / updates live over a WebSocket; metrics are served at
/metrics. State is persisted to the configured snapshot backend.

Examples:
  viewkit serve
  viewkit serve --addr=:3000
  VIEWKIT_SNAPSHOT_BACKEND=bolt VIEWKIT_SNAPSHOT_PATH=todos.db viewkit serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from config)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, out io.Writer) error {
	logger := newLogger(cfg, os.Stderr)

	store, closeStore, err := openStore(cfg.Snapshot)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("closing snapshot store", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app, err := demo.New(demo.Config{
		Logger:      logger,
		Registry:    registry,
		Namespace:   cfg.Metrics.Namespace,
		Store:       store,
		SnapshotKey: cfg.Snapshot.Key,
		QueueSize:   cfg.Host.QueueSize,
		Tick:        cfg.Demo.Tick,
	})
	if err != nil {
		return errors.New("VK200").Wrap(err)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	fmt.Fprint(out, banner)
	fmt.Fprintln(out)
	success(out, "Listening on %s", cfg.Server.Addr)
	info(out, "Snapshots: %s (key %q)", cfg.Snapshot.Backend, cfg.Snapshot.Key)
	if cfg.Snapshot.Backend == config.BackendMemory {
		warn(out, "State is kept in memory and lost on restart")
	}
	fmt.Fprintln(out)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return errors.New("VK200").WithDetail("listening on " + cfg.Server.Addr).Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Fprintln(out, "\n  Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("VK200").WithDetail("graceful shutdown").Wrap(err)
	}
	return nil
}

// newLogger builds the process logger from the log section.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", "viewkit")
}
