// Package observability serves the liveness, readiness and metrics endpoints
// and hosts the application handler on the same listener.
package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	pathHealthz = "/healthz"
	pathReadyz  = "/readyz"
	pathMetrics = "/metrics"
	pathRoot    = "/"

	defaultShutdownTimeout   = 5 * time.Second
	defaultReadHeaderTimeout = 10 * time.Second
)

// CheckFunc reports whether a dependency is ready to serve.
type CheckFunc func(ctx context.Context) error

// Options configures the server.
type Options struct {
	Port              int
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

type Server struct {
	opts    Options
	ready   CheckFunc
	handler http.Handler
	logger  *zerolog.Logger
}

// NewServer creates a server. handler is mounted at "/" and may be nil;
// ready may be nil, in which case /readyz always succeeds.
func NewServer(opts Options, ready CheckFunc, handler http.Handler, logger *zerolog.Logger) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}

	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = defaultReadHeaderTimeout
	}

	return &Server{
		opts:    opts,
		ready:   ready,
		handler: handler,
		logger:  logger,
	}
}

// Handler returns the routing mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(pathHealthz, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "OK")
	})

	mux.HandleFunc(pathReadyz, func(w http.ResponseWriter, r *http.Request) {
		if s.ready != nil {
			if err := s.ready(r.Context()); err != nil {
				readinessChecks.WithLabelValues(checkResultFail).Inc()
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = fmt.Fprintf(w, "not ready: %v", err)

				return
			}
		}

		readinessChecks.WithLabelValues(checkResultOK).Inc()
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "OK")
	})

	mux.Handle(pathMetrics, promhttp.Handler())

	if s.handler != nil {
		mux.Handle(pathRoot, s.handler)
	}

	return mux
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.opts.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)

		defer cancel()

		//nolint:errcheck,contextcheck // shutdown in signal handler is best-effort, non-inherited context intentional
		_ = srv.Shutdown(shutdownCtx)
	}()

	serverStartTime.SetToCurrentTime()
	s.logger.Info().Int("port", s.opts.Port).Msg("HTTP server starting")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}
