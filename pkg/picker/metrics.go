package picker

import "github.com/zeromicro/go-zero/core/metric"

var (
	renderBatches = metric.NewHistogramVec(&metric.HistogramVecOpts{
		Namespace: "plat_theme",
		Subsystem: "picker",
		Name:      "render_batches",
		Help:      "Batches emitted per completed font list render",
		Buckets:   []float64{1, 2, 4, 8, 12, 16},
	})

	staleBatches = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_theme",
		Subsystem: "picker",
		Name:      "stale_batches_total",
		Help:      "Batches dropped because a newer render started",
	})
)
