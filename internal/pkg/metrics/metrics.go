// Package metrics exposes Prometheus instrumentation for the outbox relay.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RelayMetrics counts what happens to outbox records as the relay drains them.
type RelayMetrics struct {
	Published    prometheus.Counter
	Failed       prometheus.Counter
	DeadLettered prometheus.Counter
	DeadLetters  prometheus.Gauge
}

// NewRelayMetrics creates and registers the relay metrics on the default
// registry. Call once per process.
func NewRelayMetrics() *RelayMetrics {
	published := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "orders",
		Subsystem: "outbox",
		Name:      "published_total",
		Help:      "Total number of outbox records published to the broker.",
	})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "orders",
		Subsystem: "outbox",
		Name:      "publish_failures_total",
		Help:      "Total number of failed publish attempts.",
	})
	deadLettered := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "orders",
		Subsystem: "outbox",
		Name:      "dead_lettered_total",
		Help:      "Total number of outbox records moved to the dead letter state.",
	})
	deadLetters := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "orders",
		Subsystem: "outbox",
		Name:      "dead_letters",
		Help:      "Current number of dead-lettered outbox records awaiting operator action.",
	})

	prometheus.MustRegister(published, failed, deadLettered, deadLetters)

	return &RelayMetrics{
		Published:    published,
		Failed:       failed,
		DeadLettered: deadLettered,
		DeadLetters:  deadLetters,
	}
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
