// Package metrics provides a ports.Metrics backed by Prometheus.
package metrics

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/buildlayout/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus records layout metrics in its own registry, so several
// instances can coexist in one process.
//
// Metrics:
//   - buildlayout_passes_total{result}
//   - buildlayout_pass_duration_seconds
//   - buildlayout_subprojects
//   - buildlayout_compile_steps_pinned
//   - buildlayout_cleans_total{result}
type Prometheus struct {
	registry     *prometheus.Registry
	passes       *prometheus.CounterVec
	passDuration prometheus.Histogram
	subprojects  prometheus.Gauge
	steps        prometheus.Gauge
	cleans       *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "buildlayout_passes_total",
			Help: "Total number of layout passes",
		}, []string{"result"}),
		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "buildlayout_pass_duration_seconds",
			Help:    "Duration of layout passes in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		subprojects: factory.NewGauge(prometheus.GaugeOpts{
			Name: "buildlayout_subprojects",
			Help: "Subprojects assigned an output directory by the last successful pass",
		}),
		steps: factory.NewGauge(prometheus.GaugeOpts{
			Name: "buildlayout_compile_steps_pinned",
			Help: "Compile steps pinned by the last successful pass",
		}),
		cleans: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "buildlayout_cleans_total",
			Help: "Total number of output root cleans",
		}, []string{"result"}),
	}
}

// ObservePass implements ports.Metrics.
func (p *Prometheus) ObservePass(result string, subprojects, steps int, elapsed time.Duration) {
	p.passes.WithLabelValues(result).Inc()
	p.passDuration.Observe(elapsed.Seconds())
	if result == ports.ResultSuccess {
		p.subprojects.Set(float64(subprojects))
		p.steps.Set(float64(steps))
	}
}

// ObserveClean implements ports.Metrics.
func (p *Prometheus) ObserveClean(result string) {
	p.cleans.WithLabelValues(result).Inc()
}

// Registry exposes the underlying registry.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// WriteTextfile writes all metrics to path in the text exposition format,
// for pickup by a node_exporter textfile collector.
func (p *Prometheus) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

var _ ports.Metrics = (*Prometheus)(nil)
