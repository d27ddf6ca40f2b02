package clients

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records backend calls made by the resource clients. A nil
// *Metrics records nothing.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Backend requests issued by the console, by outcome.",
		}, []string{"service", "operation", "code"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "console",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Backend request latency in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"service", "operation"}),
	}
	reg.MustRegister(m.Requests, m.Duration)
	return m
}

func (m *Metrics) observe(service, operation, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(service, operation, code).Inc()
	m.Duration.WithLabelValues(service, operation).Observe(elapsed.Seconds())
}
