package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	checkResultOK   = "ok"
	checkResultFail = "fail"
)

var (
	readinessChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_readiness_checks_total",
		Help: "Readiness check results",
	}, []string{"result"})

	serverStartTime = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_server_start_time_seconds",
		Help: "Unix time the HTTP server started listening",
	})
)
