package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"GoldPulse/internal/domain/models"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	signalsTotal   *prometheus.CounterVec
	lastConfidence *prometheus.GaugeVec
	errorsTotal    *prometheus.CounterVec
	fallbacksTotal *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		signalsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldpulse_signals_total",
				Help: "Total number of signals produced by action",
			},
			[]string{"symbol", "action"},
		),
		lastConfidence: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "goldpulse_last_confidence",
				Help: "Confidence of the most recent signal",
			},
			[]string{"symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		fallbacksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldpulse_fallbacks_total",
				Help: "Times a data source fell through to the next in the chain",
			},
			[]string{"component"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goldpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSignal records a produced signal and its confidence.
func (r *Recorder) RecordSignal(symbol string, action models.Action, confidence float64) {
	r.signalsTotal.WithLabelValues(symbol, string(action)).Inc()
	r.lastConfidence.WithLabelValues(symbol).Set(confidence)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordFallback records a data-source fallthrough.
func (r *Recorder) RecordFallback(component string) {
	r.fallbacksTotal.WithLabelValues(component).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
