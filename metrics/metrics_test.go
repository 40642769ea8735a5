package metrics_test

import (
	"testing"

	"github.com/baijijs/fsm"
	"github.com/baijijs/fsm/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLight(t *testing.T, c *metrics.Collector) *fsm.Machine {
	t.Helper()
	m, err := fsm.NewDefinition().
		States("green", "yellow", "red").
		Transition("yellow", "green", "green").
		Transition("red", "yellow", "yellow").
		Transition("green", "red", "red").
		Initial("red").
		Build(c.Options("light")...)
	require.NoError(t, err)
	c.Observe("light", m)
	return m
}

func TestCollectorCountsTransitions(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.New("test", reg)
	require.NoError(t, err)

	m := newLight(t, c)
	m.Fire("yellow")
	m.Fire("green")
	m.Fire("green")

	counts := map[string]int{
		"test_fsm_current_state":       3,
		"test_fsm_transitions_total":   2,
		"test_fsm_missed_events_total": 1,
	}
	for name, want := range counts {
		got, err := testutil.GatherAndCount(reg, name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}

	families, err := reg.Gather()
	require.NoError(t, err)

	current := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "test_fsm_current_state" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "state" {
					current[label.GetValue()] = metric.GetGauge().GetValue()
				}
			}
		}
	}
	assert.Equal(t, map[string]float64{"green": 1, "yellow": 0, "red": 0}, current)
}

func TestCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.New("dup", reg)
	require.NoError(t, err)

	_, err = metrics.New("dup", reg)
	assert.Error(t, err)
}

func TestCollectorWithUserCallback(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.New("user", reg)
	require.NoError(t, err)

	calls := 0
	opts := append(c.Options("door"), fsm.WithStateChangeCallback(func(*fsm.Context) { calls++ }))
	m, err := fsm.NewDefinition().
		Transition("closed", "go", "open").
		Initial("closed").
		Build(opts...)
	require.NoError(t, err)

	m.Fire("go")

	assert.Equal(t, 1, calls)
	n, err := testutil.GatherAndCount(reg, "user_fsm_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
