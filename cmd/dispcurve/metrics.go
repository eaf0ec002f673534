package main

import (
	"fmt"
	"time"

	"github.com/katalvlaran/surfwave/dispersion"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// runMetrics records one dispcurve run for the node-exporter textfile collector.
type runMetrics struct {
	reg         *prometheus.Registry
	frequencies *prometheus.CounterVec
	evaluations prometheus.Histogram
	passes      prometheus.Histogram
	duration    prometheus.Gauge
}

func newRunMetrics() *runMetrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &runMetrics{
		reg: reg,
		frequencies: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dispcurve_frequencies_total",
			Help: "Frequencies processed by result",
		}, []string{"result"}),
		evaluations: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dispcurve_evaluations",
			Help:    "Dispersion-function evaluations per frequency",
			Buckets: prometheus.ExponentialBuckets(4, 2, 10), // 4 to 2048
		}),
		passes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dispcurve_refinement_passes",
			Help:    "Quadratic refinement passes per frequency",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 10},
		}),
		duration: f.NewGauge(prometheus.GaugeOpts{
			Name: "dispcurve_run_duration_seconds",
			Help: "Wall time of the whole curve computation",
		}),
	}
}

// observe records a finished run; on failure only the error count is set.
func (m *runMetrics) observe(sols []dispersion.Solution, err error, elapsed time.Duration) {
	m.duration.Set(elapsed.Seconds())
	if err != nil {
		m.frequencies.WithLabelValues("error").Inc()
		return
	}
	for _, s := range sols {
		result := "refined"
		if s.ExactHit {
			result = "exact"
		}
		m.frequencies.WithLabelValues(result).Inc()
		m.evaluations.Observe(float64(s.Evaluations))
		m.passes.Observe(float64(s.Iterations))
	}
}

// write stores the registry in Prometheus text format at path.
func (m *runMetrics) write(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("dispcurve: write metrics: %w", err)
	}

	return nil
}
