package cli

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"

	"github.com/ndewijer/mutualfund-tracker/internal/api"
	"github.com/ndewijer/mutualfund-tracker/internal/scheduler"
)

const (
	shutdownTimeout   = 30 * time.Second
	navRefreshTimeout = 5 * time.Minute
)

type serveCmd struct {
	app  *App
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the HTTP API and refresh NAVs on a schedule" }
func (*serveCmd) Usage() string {
	return `serve [-addr host:port]

  Serves the JSON API and stores NAV snapshots on MF_NAV_SCHEDULE (standard
  cron syntax; empty disables the job). Stops on SIGINT or SIGTERM.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "listen address (default from MF_SERVER_HOST and MF_SERVER_PORT)")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := c.app.cfg
	logger := c.app.logger

	svcs, err := c.app.services(ctx, logger)
	if err != nil {
		return c.app.fail(err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(ctx, logger)
	if cfg.Server.NavSchedule != "" {
		job := scheduler.NewNavRefreshJob(svcs.Nav, navRefreshTimeout, logger)
		if err := sched.AddJob(cfg.Server.NavSchedule, job); err != nil {
			return c.app.fail(err)
		}
	}

	addr := c.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(svcs, cfg, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("starting server")
		errCh <- server.ListenAndServe()
	}()
	sched.Start()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		sched.Stop()
		return c.app.fail(err)
	}

	logger.Info().Msg("shutting down server")
	sched.Stop()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return c.app.fail(err)
	}

	logger.Info().Msg("server exited")
	return subcommands.ExitSuccess
}
