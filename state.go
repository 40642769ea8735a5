package fsm

// State is a named node of the machine together with the transitions that leave it
type State struct {
	ID StateID

	// Outgoing transitions in registration order, unique by identity
	transitions []*Transition
}

// StateDescriptor declares a state. In YAML it is either a bare name or a mapping with a name key.
type StateDescriptor struct {
	Name StateID `yaml:"name" mapstructure:"name"`
}

// StateDescriptors is an ordered list of state declarations. In YAML it may be a single state.
type StateDescriptors []StateDescriptor

// S is shorthand for a descriptor of a bare state name
func S(id StateID) StateDescriptor {
	return StateDescriptor{Name: id}
}

func newState(desc StateDescriptor) (*State, error) {
	if desc.Name == "" {
		return nil, ErrEmptyName
	}
	return &State{ID: desc.Name}, nil
}

// register appends t unless this exact transition is already present
func (s *State) register(t *Transition) {
	for _, existing := range s.transitions {
		if existing == t {
			return
		}
	}
	s.transitions = append(s.transitions, t)
}

// AllowedEvents returns the event names of the outgoing transitions in
// registration order. It is recomputed on every call so transitions added
// after a previous read are always reflected.
func (s *State) AllowedEvents() []EventID {
	if len(s.transitions) == 0 {
		return nil
	}
	events := make([]EventID, 0, len(s.transitions))
	for _, t := range s.transitions {
		events = append(events, t.Event)
	}
	return events
}

// Transitions returns a copy of the outgoing transitions
func (s *State) Transitions() []*Transition {
	out := make([]*Transition, len(s.transitions))
	copy(out, s.transitions)
	return out
}
