package export

import "github.com/zeromicro/go-zero/core/metric"

var exports = metric.NewCounterVec(&metric.CounterVecOpts{
	Namespace: "plat_theme",
	Subsystem: "export",
	Name:      "renders_total",
	Help:      "Component exports by result",
	Labels:    []string{"result"},
})
