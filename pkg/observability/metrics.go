// Package observability exposes Prometheus instrumentation for node and
// chain execution.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors the runtime feeds.
type Metrics struct {
	executions *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	chains     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on the given
// registerer (pass prometheus.DefaultRegisterer for the usual setup).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orchestron",
			Name:      "node_executions_total",
			Help:      "Node invocations by node name and outcome.",
		}, []string{"node", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "orchestron",
			Name:      "node_execution_seconds",
			Help:      "Wall time of node execution including validation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"node"}),
		chains: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orchestron",
			Name:      "chain_runs_total",
			Help:      "Chain runs by chain name and outcome.",
		}, []string{"chain", "outcome"}),
	}
	reg.MustRegister(m.executions, m.duration, m.chains)
	return m
}

// NopMetrics returns collectors bound to a throwaway registry. Handy for
// tests and embedders that do not scrape.
func NopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// ObserveExecution records one node invocation.
func (m *Metrics) ObserveExecution(node, outcome string, elapsed time.Duration) {
	m.executions.WithLabelValues(node, outcome).Inc()
	m.duration.WithLabelValues(node).Observe(elapsed.Seconds())
}

// ObserveChain records one chain run.
func (m *Metrics) ObserveChain(chain, outcome string) {
	m.chains.WithLabelValues(chain, outcome).Inc()
}
