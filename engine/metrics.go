package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/semshapes/report"
)

// runMetrics instruments validation runs.
type runMetrics struct {
	runs       prometheus.Counter
	violations prometheus.Counter
	warnings   prometheus.Counter
	duration   prometheus.Histogram
}

// WithMetrics registers run counters and a duration histogram.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		m := &runMetrics{
			runs: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "semshapes_validation_runs_total",
				Help: "Total validation runs executed",
			}),
			violations: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "semshapes_violations_total",
				Help: "Total violations detected across runs",
			}),
			warnings: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "semshapes_warnings_total",
				Help: "Total warnings detected across runs",
			}),
			duration: prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "semshapes_validation_duration_seconds",
				Help:    "Wall time per validation run",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			}),
		}
		reg.MustRegister(m.runs, m.violations, m.warnings, m.duration)
		e.metrics = m
	}
}

func (e *Engine) observe(rep *report.Report, elapsed time.Duration) {
	if e.metrics == nil {
		return
	}
	e.metrics.runs.Inc()
	e.metrics.violations.Add(float64(len(rep.Violations)))
	e.metrics.warnings.Add(float64(len(rep.Warnings)))
	e.metrics.duration.Observe(elapsed.Seconds())
}
