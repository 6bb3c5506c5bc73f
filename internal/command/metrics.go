package command

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// runMetrics collects the outcome of one run for the node exporter
// textfile collector. Each run uses its own registry.
type runMetrics struct {
	registry   *prometheus.Registry
	documents  *prometheus.CounterVec
	violations *prometheus.CounterVec
	duration   prometheus.Histogram
}

func newRunMetrics(command string) *runMetrics {
	labels := prometheus.Labels{"command": command}
	m := &runMetrics{
		registry: prometheus.NewRegistry(),
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "constraints_documents_total",
				Help:        "Documents processed by result (valid, invalid, error)",
				ConstLabels: labels,
			},
			[]string{"result"},
		),
		violations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "constraints_violations_total",
				Help:        "Constraint violations reported by constraint kind",
				ConstLabels: labels,
			},
			[]string{"constraint"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "constraints_run_duration_seconds",
			Help:        "Time spent validating all documents of a run",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
	m.registry.MustRegister(m.documents, m.violations, m.duration)
	return m
}

func (m *runMetrics) observe(reports []documentReport, elapsed time.Duration) {
	for _, r := range reports {
		switch {
		case r.Error != "":
			m.documents.WithLabelValues("error").Inc()
		case r.Valid:
			m.documents.WithLabelValues("valid").Inc()
		default:
			m.documents.WithLabelValues("invalid").Inc()
		}
		for _, v := range r.Violations {
			m.violations.WithLabelValues(v.Constraint).Inc()
		}
	}
	m.duration.Observe(elapsed.Seconds())
}

// write replaces path atomically with the collected metrics.
func (m *runMetrics) write(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
