package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "delegator"

// Metrics is a delegate.Observer that exports Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	bound    *prometheus.GaugeVec
	firings  *prometheus.CounterVec
	steps    *prometheus.CounterVec
	stopped  *prometheus.CounterVec
	walkLen  *prometheus.HistogramVec
	bindings *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on a private
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		bound: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bound_events",
			Help:      "Bound event names, labeled by capture phase. Unbound names have no series.",
		}, []string{"event", "capture"}),
		firings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "firings_total",
			Help:      "Native firings delegated, by event name.",
		}, []string{"event"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "walk_steps_total",
			Help:      "Ancestor steps visited by synthetic walks.",
		}, []string{"event"}),
		stopped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "propagation_stopped_total",
			Help:      "Walks ended early by StopPropagation.",
		}, []string{"event"}),
		walkLen: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "walk_length",
			Help:      "Steps per completed walk.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}, []string{"event"}),
		bindings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "binding_changes_total",
			Help:      "Bind and unbind operations.",
		}, []string{"op"}),
	}
	m.registry.MustRegister(m.bound, m.firings, m.steps, m.stopped, m.walkLen, m.bindings)
	return m
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Bound(name string, capture bool) {
	m.bound.DeleteLabelValues(name, captureLabel(!capture))
	m.bound.WithLabelValues(name, captureLabel(capture)).Set(1)
	m.bindings.WithLabelValues("bind").Inc()
}

func (m *Metrics) Unbound(name string) {
	m.bound.DeleteLabelValues(name, captureLabel(true))
	m.bound.DeleteLabelValues(name, captureLabel(false))
	m.bindings.WithLabelValues("unbind").Inc()
}

func (m *Metrics) FiringStarted(name string) {
	m.firings.WithLabelValues(name).Inc()
}

func (m *Metrics) StepVisited(name string) {
	m.steps.WithLabelValues(name).Inc()
}

func (m *Metrics) FiringFinished(name string, steps int, stopped bool) {
	m.walkLen.WithLabelValues(name).Observe(float64(steps))
	if stopped {
		m.stopped.WithLabelValues(name).Inc()
	}
}

func captureLabel(capture bool) string {
	if capture {
		return "true"
	}
	return "false"
}
