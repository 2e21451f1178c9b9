package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"tailscale.com/tsnet"

	"github.com/claude/hevy2notion/internal/config"
	"github.com/claude/hevy2notion/internal/server"
	"github.com/claude/hevy2notion/internal/syncer"
)

// shutdownTimeout bounds the graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var schedule string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server, optionally syncing on a cron schedule",
		Long: `Serve GET /update-notion and the other endpoints over HTTP, on a plain
TCP listener or on the tailnet when tailscale.enabled is set. With a
schedule (server.schedule or --schedule) a sync also runs periodically.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, rootOpts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			if schedule != "" {
				a.cfg.Server.Schedule = schedule
			}
			return runServe(ctx, a, rootOpts.Version)
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "", "cron expression for periodic syncs (overrides server.schedule)")

	return cmd
}

func runServe(ctx context.Context, a *app, version string) error {
	log := a.log
	log.Info("hevy2notion starting", "version", version)

	if a.cfg.Server.Schedule != "" {
		c, err := newScheduler(ctx, a.cfg.Server.Schedule, a.syncer, log)
		if err != nil {
			return err
		}
		c.Start()
		defer func() { <-c.Stop().Done() }()
		log.Info("scheduled sync enabled", "schedule", a.cfg.Server.Schedule)
	}

	listener, closeListener, err := listen(a.cfg, log)
	if err != nil {
		return err
	}
	defer closeListener()

	httpSrv := &http.Server{
		Handler:           server.New(a.syncer, a.cfg.Auth.APIKey, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-serveErr:
		return fmt.Errorf("serving http: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
	return nil
}

// listen opens a tsnet listener when tailscale is enabled, a plain TCP
// listener otherwise. The returned func releases the tsnet node.
func listen(cfg *config.Config, log *slog.Logger) (net.Listener, func(), error) {
	if !cfg.Tailscale.Enabled {
		addr := cfg.Server.Addr()
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return nil, nil, fmt.Errorf("listen on %s: %w", addr, err)
		}
		log.Info("server starting", "addr", ln.Addr().String(), "mode", "plain http")
		return ln, func() {}, nil
	}

	ts := &tsnet.Server{
		Hostname: cfg.Tailscale.Hostname,
		Dir:      cfg.Tailscale.StateDir,
	}
	if err := ts.Start(); err != nil {
		return nil, nil, fmt.Errorf("tsnet start: %w", err)
	}
	ln, err := ts.Listen("tcp", ":80")
	if err != nil {
		ts.Close()
		return nil, nil, fmt.Errorf("tsnet listen: %w", err)
	}
	log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	return ln, func() { ts.Close() }, nil
}

// scheduleParser accepts standard five-field expressions, an optional
// leading seconds field and descriptors such as @every 15m.
var scheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// newScheduler returns a stopped cron runner that syncs on schedule.
func newScheduler(ctx context.Context, schedule string, s *syncer.Syncer, log *slog.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithParser(scheduleParser))
	_, err := c.AddFunc(schedule, func() {
		res, err := s.Run(ctx)
		if err != nil {
			return
		}
		if werr := res.Err(); werr != nil {
			log.Warn("scheduled sync finished with errors", "run_id", res.RunID, "error", werr)
			return
		}
		log.Info("scheduled sync finished", "run_id", res.RunID, "status", res.Status)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	return c, nil
}
