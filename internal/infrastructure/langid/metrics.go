package langid

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var detectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "transbot_language_detections_total",
		Help: "Language detections by resolution path (model or fallback)",
	},
	[]string{"engine", "path"},
)

// Observer returns a callback counting detections for engine.
func Observer(engine string) func(path string) {
	return func(path string) {
		detectionsTotal.WithLabelValues(engine, path).Inc()
	}
}
