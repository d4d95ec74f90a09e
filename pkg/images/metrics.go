package images

import "github.com/zeromicro/go-zero/core/metric"

var uploads = metric.NewCounterVec(&metric.CounterVecOpts{
	Namespace: "plat_theme",
	Subsystem: "images",
	Name:      "uploads_total",
	Help:      "Image uploads by result",
	Labels:    []string{"result"},
})
