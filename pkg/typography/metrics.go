package typography

import "github.com/zeromicro/go-zero/core/metric"

var settingsChanges = metric.NewCounterVec(&metric.CounterVecOpts{
	Namespace: "plat_theme",
	Subsystem: "typography",
	Name:      "changes_total",
	Help:      "Persisted typography changes by role",
	Labels:    []string{"role"},
})
