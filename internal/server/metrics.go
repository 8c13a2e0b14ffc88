package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Frontend labels for calculation metrics.
const (
	frontendWeb  = "web"
	frontendAPI  = "api"
	frontendChat = "chat"
)

const outcomeOK = "ok"

// Metrics contains the Prometheus collectors for one Service. Each Service
// owns its registry so tests can build several side by side.
type Metrics struct {
	registry *prometheus.Registry

	calculations    *prometheus.CounterVec
	chatSessions    prometheus.Gauge
	requestDuration *prometheus.HistogramVec
}

func newMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "savebonus_calculations_total",
				Help: "Total number of calculation attempts by front end and outcome",
			},
			[]string{"frontend", "outcome"},
		),

		chatSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "savebonus_chat_sessions",
				Help: "Number of live chat sessions",
			},
		),

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "savebonus_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
	}
}

// RecordCalculation counts one calculation attempt. outcome is "ok" or an
// error kind.
func (m *Metrics) RecordCalculation(frontend, outcome string) {
	m.calculations.WithLabelValues(frontend, outcome).Inc()
}

// SetChatSessions reports the live session count.
func (m *Metrics) SetChatSessions(n int) {
	m.chatSessions.Set(float64(n))
}

// instrument times every request to h under the given route label.
func (m *Metrics) instrument(path string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h(w, r)
		m.requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
