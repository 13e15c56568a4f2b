package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Estimate outcomes recorded by cicalc_estimates_total.
const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
)

// Metrics holds the Prometheus collectors of a server. Each Metrics owns its
// registry so that several servers can coexist in one process.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   prometheus.Counter
	activeRequests  prometheus.Gauge
	requestDuration prometheus.Histogram
	estimatesTotal  *prometheus.CounterVec
}

// NewMetrics creates and registers the server collectors together with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cicalc_requests_total",
			Help: "Total number of HTTP requests served.",
		}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cicalc_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cicalc_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		estimatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cicalc_estimates_total",
			Help: "Estimates computed, by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		m.requestsTotal,
		m.activeRequests,
		m.requestDuration,
		m.estimatesTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, outcome := range []string{outcomeOK, outcomeInvalid} {
		m.estimatesTotal.WithLabelValues(outcome)
	}
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// IncrementActiveRequests marks the start of a request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests marks the end of a request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// ObserveRequest records a completed request.
func (m *Metrics) ObserveRequest(d time.Duration) {
	m.requestsTotal.Inc()
	m.requestDuration.Observe(d.Seconds())
}

// RecordEstimate counts an estimate with its outcome.
func (m *Metrics) RecordEstimate(ok bool) {
	outcome := outcomeOK
	if !ok {
		outcome = outcomeInvalid
	}
	m.estimatesTotal.WithLabelValues(outcome).Inc()
}

// WritePrometheus writes the metrics in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
