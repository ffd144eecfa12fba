// Package metrics collects and exposes Prometheus metrics for the reading flow.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics interface consumed by the reading service.
type Recorder interface {
	RecordReading(model, outcome string)
	RecordFallback()
	RecordReadingLatency(d time.Duration)
}

// Collector implements Recorder on a Prometheus registry.
type Collector struct {
	readings  *prometheus.CounterVec
	fallbacks prometheus.Counter
	latency   prometheus.Histogram
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		readings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aitaluo_readings_total",
			Help: "Reading requests by resolving model and outcome.",
		}, []string{"model", "outcome"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aitaluo_fallbacks_total",
			Help: "Primary-model failures that triggered the fallback model.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aitaluo_reading_latency_seconds",
			Help:    "Wall-clock reading latency as perceived by the client, floor included.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(c.readings, c.fallbacks, c.latency)
	return c
}

func (c *Collector) RecordReading(model, outcome string) {
	c.readings.WithLabelValues(model, outcome).Inc()
}

func (c *Collector) RecordFallback() {
	c.fallbacks.Inc()
}

func (c *Collector) RecordReadingLatency(d time.Duration) {
	c.latency.Observe(d.Seconds())
}

// Handler returns the HTTP handler serving the /metrics scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
