// Package metrics exports machine activity to Prometheus.
package metrics

import (
	"github.com/baijijs/fsm"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector counts fired and missed events and tracks the current state of
// every machine wired to it. Machines are told apart by the machine label.
type Collector struct {
	transitions *prometheus.CounterVec
	misses      *prometheus.CounterVec
	current     *prometheus.GaugeVec
}

// New creates a collector and registers it with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func New(namespace string, reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fsm_transitions_total",
				Help:      "Total number of fired transitions",
			},
			[]string{"machine", "event", "from", "to"},
		),
		misses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fsm_missed_events_total",
				Help:      "Total number of events that matched no transition",
			},
			[]string{"machine", "event", "state"},
		),
		current: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "fsm_current_state",
				Help:      "1 for the current state of a machine, 0 otherwise",
			},
			[]string{"machine", "state"},
		),
	}

	for _, col := range []prometheus.Collector{c.transitions, c.misses, c.current} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Options returns the machine options that feed this collector under the given machine label
func (c *Collector) Options(machine string) []fsm.MachineOption {
	return []fsm.MachineOption{
		fsm.WithStateChangeCallback(func(ctx *fsm.Context) {
			c.transitions.WithLabelValues(machine, string(ctx.Event), string(ctx.FromState), string(ctx.ToState)).Inc()
			c.current.WithLabelValues(machine, string(ctx.FromState)).Set(0)
			c.current.WithLabelValues(machine, string(ctx.ToState)).Set(1)
		}),
		fsm.WithMissCallback(func(ctx *fsm.Context) {
			c.misses.WithLabelValues(machine, string(ctx.Event), string(ctx.FromState)).Inc()
		}),
	}
}

// Observe records the current state of m, typically right after it is built
func (c *Collector) Observe(machine string, m *fsm.Machine) {
	current := m.Current()
	for _, id := range m.States() {
		v := 0.0
		if id == current {
			v = 1
		}
		c.current.WithLabelValues(machine, string(id)).Set(v)
	}
}
