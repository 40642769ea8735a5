package fsm

import "fmt"

// Transition binds an event name to one origin and one destination state.
// It carries no behavior; firing is driven by the Machine.
type Transition struct {
	Event EventID
	From  *State
	To    *State

	// Conditions is stored verbatim and never evaluated
	Conditions any
}

// TransitionDescriptor declares an event with one or more origin states.
// An empty From means the transition is declared from WildcardState.
type TransitionDescriptor struct {
	Name       EventID   `yaml:"name" mapstructure:"name"`
	From       StateList `yaml:"from,omitempty" mapstructure:"from"`
	To         StateID   `yaml:"to" mapstructure:"to"`
	Conditions any       `yaml:"conditions,omitempty" mapstructure:"conditions"`
}

// StateList is an ordered list of state names. In YAML it may be a single scalar.
type StateList []StateID

// origins normalizes the from list, defaulting to the wildcard
func (d TransitionDescriptor) origins() []StateID {
	if len(d.From) == 0 {
		return []StateID{WildcardState}
	}
	return d.From
}

func (d TransitionDescriptor) validate() error {
	if d.Name == "" {
		return fmt.Errorf("transition: %w", ErrEmptyName)
	}
	if d.To == "" {
		return fmt.Errorf("transition %q: to: %w", d.Name, ErrEmptyName)
	}
	for _, from := range d.origins() {
		if from == "" {
			return fmt.Errorf("transition %q: from: %w", d.Name, ErrEmptyName)
		}
	}
	return nil
}

// newTransition creates a transition and registers it on its origin state.
// Missing endpoints are registered on m first. Callers must hold m.mu.
func newTransition(event EventID, m *Machine, from, to StateID, conditions any) (*Transition, error) {
	if event == "" {
		return nil, fmt.Errorf("transition: %w", ErrEmptyName)
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("transition %q: endpoint: %w", event, ErrEmptyName)
	}

	for _, id := range []StateID{from, to} {
		if _, ok := m.states[id]; !ok {
			if err := m.addStateLocked(S(id)); err != nil {
				return nil, err
			}
		}
	}

	fromState, err := m.getStateLocked(from)
	if err != nil {
		return nil, err
	}
	toState, err := m.getStateLocked(to)
	if err != nil {
		return nil, err
	}

	t := &Transition{
		Event:      event,
		From:       fromState,
		To:         toState,
		Conditions: conditions,
	}
	fromState.register(t)
	return t, nil
}

// IsWildcard reports whether the transition was declared from WildcardState
func (t *Transition) IsWildcard() bool {
	return t.From.ID == WildcardState
}
