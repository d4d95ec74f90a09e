package warm

import "github.com/zeromicro/go-zero/core/metric"

var (
	jobsDone = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_theme",
		Subsystem: "warm",
		Name:      "jobs_done_total",
		Help:      "Total warm jobs completed",
		Labels:    []string{},
	})

	jobsFailed = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_theme",
		Subsystem: "warm",
		Name:      "jobs_failed_total",
		Help:      "Total warm jobs failed permanently",
		Labels:    []string{"reason"},
	})

	jobsRetried = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_theme",
		Subsystem: "warm",
		Name:      "jobs_retried_total",
		Help:      "Total warm job retries",
		Labels:    []string{},
	})

	filesCached = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_theme",
		Subsystem: "warm",
		Name:      "files_cached_total",
		Help:      "Font files downloaded into the cache",
		Labels:    []string{},
	})

	warmDuration = metric.NewHistogramVec(&metric.HistogramVecOpts{
		Namespace: "plat_theme",
		Subsystem: "warm",
		Name:      "duration_seconds",
		Help:      "Warm job duration in seconds",
		Labels:    []string{},
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	})

	queueDepth = metric.NewGaugeVec(&metric.GaugeVecOpts{
		Namespace: "plat_theme",
		Subsystem: "warm_queue",
		Name:      "depth",
		Help:      "Current warm queue depth by status",
		Labels:    []string{"status"},
	})
)
