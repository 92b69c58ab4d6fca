package translate

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"transbot/internal/ports/output"
)

var (
	translationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transbot_translation_requests_total",
			Help: "Total number of provider translation calls",
		},
		[]string{"engine", "target_lang", "status"},
	)

	translationRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transbot_translation_request_duration_seconds",
			Help:    "Duration of provider translation calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"engine", "status"},
	)

	translationRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transbot_translation_request_size_bytes",
			Help:    "Size of translated source text in bytes",
			Buckets: []float64{16, 64, 256, 1024, 4096},
		},
		[]string{"engine"},
	)
)

var _ output.Translator = (*Instrumented)(nil)

// Instrumented records Prometheus metrics around another Translator.
type Instrumented struct {
	next   output.Translator
	engine string
}

// NewInstrumented wraps next.
func NewInstrumented(next output.Translator, engine EngineType) *Instrumented {
	return &Instrumented{next: next, engine: string(engine)}
}

// Translate delegates to the wrapped Translator.
func (i *Instrumented) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	start := time.Now()
	out, err := i.next.Translate(ctx, text, sourceLang, targetLang)
	status := "success"
	if err != nil {
		status = "error"
	}
	translationRequestsTotal.WithLabelValues(i.engine, targetLang, status).Inc()
	translationRequestDuration.WithLabelValues(i.engine, status).Observe(time.Since(start).Seconds())
	translationRequestSize.WithLabelValues(i.engine).Observe(float64(len(text)))
	return out, err
}

// Unwrap returns the wrapped Translator.
func (i *Instrumented) Unwrap() output.Translator {
	return i.next
}
