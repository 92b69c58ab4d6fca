package memory

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector reports the number of stored chat preferences as a gauge.
func (r *PreferenceRepository) Collector() prometheus.Collector {
	return prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "transbot_chat_preferences",
			Help: "Conversations with custom target languages",
		},
		func() float64 { return float64(r.Len()) },
	)
}
