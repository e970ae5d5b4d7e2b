package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Login attempt label values.
const (
	loginResultOK      = "ok"
	loginResultInvalid = "invalid"
	loginResultLimited = "rate_limited"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_requests_total",
		Help: "Total number of dashboard requests",
	}, []string{"route", "status"})

	latencyHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_request_latency_seconds",
		Help:    "Latency of dashboard requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	loginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_login_attempts_total",
		Help: "Total number of dashboard login attempts by result",
	}, []string{"result"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_active_sessions",
		Help: "Number of live dashboard sessions after the last sweep",
	})
)
