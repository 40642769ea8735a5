package graph

import (
	"fmt"
	"strings"

	"github.com/baijijs/fsm"
)

// anyNode stands in for transitions declared from the wildcard
const anyNode = "any"

// Mermaid produces a stateDiagram-v2 for m. States are listed in
// registration order and edges in event declaration order. The current
// state is styled with the "current" class.
func Mermaid(m *fsm.Machine) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	ids := make(map[fsm.StateID]string)
	for _, id := range m.States() {
		if id == fsm.WildcardState {
			continue
		}
		safe := sanitizeID(id, ids)
		ids[id] = safe
		if safe != string(id) {
			sb.WriteString(fmt.Sprintf("    state \"%s\" as %s\n", escape(string(id)), safe))
		}
	}

	node := func(id fsm.StateID) string {
		if id == fsm.WildcardState {
			return anyNode
		}
		return ids[id]
	}

	current := node(m.Current())
	// The initial state is the one the machine started in, which is only
	// known now if nothing has fired yet.
	if _, moved := m.Previous(); !moved {
		sb.WriteString(fmt.Sprintf("    [*] --> %s\n", current))
	}

	for _, t := range m.Transitions() {
		sb.WriteString(fmt.Sprintf("    %s --> %s: %s\n", node(t.From.ID), node(t.To.ID), escape(string(t.Event))))
	}

	sb.WriteString("    classDef current fill:#f96,stroke:#333,stroke-width:2px\n")
	sb.WriteString(fmt.Sprintf("    class %s current\n", current))
	return sb.String()
}

// sanitizeID makes a state name usable as a Mermaid identifier, keeping it
// unique among the ids already assigned.
func sanitizeID(id fsm.StateID, taken map[fsm.StateID]string) string {
	var sb strings.Builder
	for _, r := range string(id) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	base := sb.String()
	if base == "" || base == anyNode {
		base = "s_" + base
	}

	candidate := base
	for n := 2; ; n++ {
		clash := false
		for _, v := range taken {
			if v == candidate {
				clash = true
				break
			}
		}
		if !clash {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
