package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the Prometheus collectors exercising workflow
// execution. The server and scheduler binaries register these against
// the default registry and serve them over /metrics via promhttp; the
// CLI does not.
type Metrics struct {
	ExecutionsTotal  *prometheus.CounterVec
	ExecutionSeconds *prometheus.HistogramVec
	RetryAttempts    *prometheus.CounterVec
	RateLimitDenials prometheus.Counter
}

// NewMetrics constructs and registers the collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		ExecutionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "workflow_executions_total",
			Help: "Total workflow node executions, by kind and final status.",
		}, []string{"kind", "status"}),

		ExecutionSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "workflow_execution_duration_seconds",
			Help:    "Execution duration of a workflow node, by kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),

		RetryAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "workflow_retry_attempts_total",
			Help: "Total task attempts, by task name.",
		}, []string{"task"}),

		RateLimitDenials: promauto.NewCounter(prometheus.CounterOpts{
			Name: "workflow_rate_limit_denials_total",
			Help: "Total admissions denied by a RateLimitedWorkflow in strict mode.",
		}),
	}
}

// Observe records one node execution's outcome.
func (m *Metrics) Observe(kind, status string, seconds float64) {
	m.ExecutionsTotal.WithLabelValues(kind, status).Inc()
	m.ExecutionSeconds.WithLabelValues(kind).Observe(seconds)
}

// RecordAttempts adds a task's attempt count, as reported by
// Result.Attempts, to the retry counter.
func (m *Metrics) RecordAttempts(task string, attempts int) {
	if attempts <= 0 {
		return
	}
	m.RetryAttempts.WithLabelValues(task).Add(float64(attempts))
}

// RecordRateLimitDenial counts one strict-mode admission denial.
func (m *Metrics) RecordRateLimitDenial() {
	m.RateLimitDenials.Inc()
}
