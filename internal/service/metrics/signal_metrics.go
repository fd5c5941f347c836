package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	EndpointLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "goldpulse",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of signal API endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	EndpointErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "goldpulse",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Errors by signal API endpoint",
		},
		[]string{"endpoint"},
	)

	EndpointCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "goldpulse",
			Subsystem: "api",
			Name:      "cache_hits_total",
			Help:      "Response cache hits by signal API endpoint",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(EndpointLatency, EndpointErrors, EndpointCacheHits)
	})
}
