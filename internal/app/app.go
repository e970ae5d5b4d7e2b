// Package app wires the dashboard service together.
//
// The App type owns the configuration and logger and builds the report
// loader, the dashboard handler and the HTTP server that hosts them next to
// the health and metrics endpoints.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lueurxax/auto-news-dashboard/internal/dashboard"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/config"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/observability"
	"github.com/lueurxax/auto-news-dashboard/internal/platform/worker"
	"github.com/lueurxax/auto-news-dashboard/internal/report"
)

const (
	logFieldReportPath = "report_path"
	sweepWorkerName    = "session-sweep"
)

// App holds the application dependencies.
type App struct {
	cfg    *config.Config
	loader *report.Loader
	logger *zerolog.Logger
}

func New(cfg *config.Config, logger *zerolog.Logger) *App {
	return &App{
		cfg:    cfg,
		loader: report.NewLoader(cfg.Report.ResultsJSONPath, logger),
		logger: logger,
	}
}

// RunHTTP serves the dashboard until ctx is canceled.
func (a *App) RunHTTP(ctx context.Context) error {
	if a.cfg.Auth.GeneratedSecret {
		a.logger.Warn().Msg("SESSION_SECRET not set, sessions will not survive a restart")
	}

	if path := a.loader.Path(); path != "" {
		a.logger.Info().Str(logFieldReportPath, path).Msg("report found")
	} else {
		a.logger.Warn().Msg("no report found yet, dashboard will show the no-data page")
	}

	handler, err := dashboard.NewHandler(a.cfg, a.loader, a.logger)
	if err != nil {
		return fmt.Errorf("dashboard handler init: %w", err)
	}

	go a.runSweep(ctx, handler)

	srv := observability.NewServer(observability.Options{
		Port:              a.cfg.Server.Port,
		ReadHeaderTimeout: a.cfg.Server.ReadHeaderTimeout,
		ShutdownTimeout:   a.cfg.Server.ShutdownTimeout,
	}, a.ready, handler, a.logger)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("http server start: %w", err)
	}

	return nil
}

// ready succeeds once a report can be found and decoded.
func (a *App) ready(ctx context.Context) error {
	if _, err := a.loader.Load(ctx); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	return nil
}

func (a *App) runSweep(ctx context.Context, handler *dashboard.Handler) {
	err := worker.TickerLoop(ctx, worker.TickerConfig{
		Name:     sweepWorkerName,
		Interval: a.cfg.Auth.SweepInterval,
		OnTick:   handler.Sweep,
		Logger:   a.logger,
	})
	if err != nil && ctx.Err() == nil {
		a.logger.Error().Err(err).Msg("session sweep stopped")
	}
}
