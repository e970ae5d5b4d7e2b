package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Report load result label values.
const (
	loadResultOK       = "ok"
	loadResultNotFound = "not_found"
	loadResultInvalid  = "invalid"
)

var (
	reportLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_report_loads_total",
		Help: "Total number of report load attempts by result",
	}, []string{"result"})

	reportArticlesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_report_articles",
		Help: "Number of articles in the most recently loaded report",
	})
)
