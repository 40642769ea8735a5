package graph

import (
	"strings"
	"testing"

	"github.com/baijijs/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMermaid(t *testing.T) {
	m, err := fsm.NewDefinition().
		Transition("asleep", "wakeup", "hungry").
		Event("nap", "asleep", fsm.From("sleepy", "tired")).
		AnyStateTransition("faint", "asleep").
		Initial("asleep").
		Build()
	require.NoError(t, err)

	want := strings.Join([]string{
		"stateDiagram-v2",
		"    [*] --> asleep",
		"    asleep --> hungry: wakeup",
		"    sleepy --> asleep: nap",
		"    tired --> asleep: nap",
		"    any --> asleep: faint",
		"    classDef current fill:#f96,stroke:#333,stroke-width:2px",
		"    class asleep current",
		"",
	}, "\n")
	assert.Equal(t, want, Mermaid(m))
}

func TestMermaidAfterFire(t *testing.T) {
	m, err := fsm.NewDefinition().
		Transition("off", "toggle", "on").
		Initial("off").
		Build()
	require.NoError(t, err)
	m.Fire("toggle")

	out := Mermaid(m)
	assert.NotContains(t, out, "[*]")
	assert.Contains(t, out, "class on current")
}

func TestMermaidSanitizesIDs(t *testing.T) {
	m, err := fsm.NewDefinition().
		Transition("in review", "approve", "in-review").
		Transition("any", "go", "in review").
		Initial("in review").
		Build()
	require.NoError(t, err)

	out := Mermaid(m)
	assert.Contains(t, out, `state "in review" as in_review`)
	assert.Contains(t, out, `state "in-review" as in_review_2`)
	assert.Contains(t, out, `state "any" as s_any`)
	assert.Contains(t, out, "in_review --> in_review_2: approve")
	assert.Contains(t, out, "s_any --> in_review: go")
}

func TestMermaidWildcardInitial(t *testing.T) {
	m, err := fsm.NewDefinition().
		AnyStateTransition("start", "running").
		Initial(fsm.WildcardState).
		Build()
	require.NoError(t, err)

	out := Mermaid(m)
	assert.Contains(t, out, "    [*] --> any\n")
	assert.Contains(t, out, "    any --> running: start\n")
	assert.Contains(t, out, "    class any current\n")
	assert.NotContains(t, out, "[*] --> \n")
}
