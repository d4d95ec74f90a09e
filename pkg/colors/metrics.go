package colors

import "github.com/zeromicro/go-zero/core/metric"

var (
	presetReloads = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_theme",
		Subsystem: "colors",
		Name:      "preset_reloads_total",
		Help:      "Preset file reloads by outcome",
		Labels:    []string{"outcome"},
	})

	schemeChanges = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_theme",
		Subsystem: "colors",
		Name:      "changes_total",
		Help:      "Persisted color changes by mode",
		Labels:    []string{"mode"},
	})
)
