// Package worker runs periodic background tasks next to the HTTP server.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var errInvalidInterval = errors.New("interval must be positive")

const (
	logFieldWorker = "worker"
	logFieldTask   = "task"
)

// TickerConfig configures a ticker loop.
type TickerConfig struct {
	// Name identifies the worker for logging.
	Name string

	// Interval is the time between ticks.
	Interval time.Duration

	// OnTick is called every Interval.
	OnTick func(ctx context.Context)

	// Logger for the worker.
	Logger *zerolog.Logger
}

// TickerLoop calls cfg.OnTick every cfg.Interval until ctx is canceled.
// A panicking tick is logged and the loop keeps going.
// Returns a wrapped context error when the context is canceled.
func TickerLoop(ctx context.Context, cfg TickerConfig) error {
	logger := getLogger(cfg.Logger)

	if cfg.Interval <= 0 {
		return fmt.Errorf("ticker loop %s: %w", cfg.Name, errInvalidInterval)
	}

	logger.Info().Str(logFieldWorker, cfg.Name).Dur("interval", cfg.Interval).Msg("starting ticker loop")
	defer logger.Info().Str(logFieldWorker, cfg.Name).Msg("ticker loop stopped")

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("ticker loop %s: %w", cfg.Name, ctx.Err())
		case <-ticker.C:
			runTick(ctx, cfg, logger)
		}
	}
}

func runTick(ctx context.Context, cfg TickerConfig, logger *zerolog.Logger) {
	if cfg.OnTick == nil {
		return
	}

	defer RecoverPanic(logger, cfg.Name)

	logger.Debug().Str(logFieldTask, cfg.Name).Msg("ticker fired")
	cfg.OnTick(ctx)
}

// RecoverPanic recovers from panics and logs them.
// Use as: defer worker.RecoverPanic(logger, "operation name")
func RecoverPanic(logger *zerolog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error().
			Interface("panic", r).
			Str("operation", operation).
			Msg("recovered from panic")
	}
}

// getLogger returns the provided logger or a nop logger if nil.
func getLogger(logger *zerolog.Logger) *zerolog.Logger {
	if logger == nil {
		nop := zerolog.Nop()

		return &nop
	}

	return logger
}
