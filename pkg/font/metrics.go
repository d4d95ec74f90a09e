package font

import "github.com/zeromicro/go-zero/core/metric"

var (
	catalogFetches = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_theme",
		Subsystem: "catalog",
		Name:      "fetches_total",
		Help:      "Font directory fetch attempts by outcome",
		Labels:    []string{"outcome"},
	})

	catalogFetchDuration = metric.NewHistogramVec(&metric.HistogramVecOpts{
		Namespace: "plat_theme",
		Subsystem: "catalog",
		Name:      "fetch_duration_ms",
		Help:      "Font directory fetch duration in milliseconds",
		Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000},
	})

	stylesheetLinks = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_theme",
		Subsystem: "stylesheet",
		Name:      "links_total",
		Help:      "Stylesheet links added, by whether they were new",
		Labels:    []string{"result"},
	})
)
