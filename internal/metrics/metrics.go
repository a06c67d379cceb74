// Package metrics exposes Prometheus counters for progress drawables.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"circprog/internal/progress"
)

// Observer counts drawable ticks and state transitions. It implements
// progress.Observer and registers its collectors on its own registry.
type Observer struct {
	registry    *prometheus.Registry
	ticks       prometheus.Counter
	runStates   *prometheus.CounterVec
	phases      *prometheus.CounterVec
	activeGauge prometheus.Gauge
}

// NewObserver creates an Observer with a fresh registry.
func NewObserver() *Observer {
	o := &Observer{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "circprog_ticks_total", Help: "Total number of animation ticks processed."},
		),
		runStates: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "circprog_run_state_transitions_total", Help: "Run state transitions by target state."},
			[]string{"to"},
		),
		phases: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "circprog_phase_transitions_total", Help: "Indeterminate phase transitions by target phase."},
			[]string{"to"},
		),
		activeGauge: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "circprog_active_drawables", Help: "Number of drawables not in the stopped state."},
		),
	}
	o.registry.MustRegister(o.ticks, o.runStates, o.phases, o.activeGauge)
	return o
}

// Registry returns the registry holding the observer's collectors.
func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}

func (o *Observer) RunStateChanged(from, to progress.RunState) {
	o.runStates.WithLabelValues(to.String()).Inc()
	switch {
	case from == progress.Stopped && to != progress.Stopped:
		o.activeGauge.Inc()
	case from != progress.Stopped && to == progress.Stopped:
		o.activeGauge.Dec()
	}
}

func (o *Observer) PhaseChanged(_, to progress.Phase) {
	o.phases.WithLabelValues(to.String()).Inc()
}

func (o *Observer) Ticked() {
	o.ticks.Inc()
}

var _ progress.Observer = (*Observer)(nil)
