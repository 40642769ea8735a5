package fsm

// Definition is a fluent builder for a Config
type Definition struct {
	config Config
}

// NewDefinition creates a new FSM definition builder
func NewDefinition() *Definition {
	return &Definition{}
}

// State declares a state
func (d *Definition) State(id StateID) *Definition {
	d.config.States = append(d.config.States, S(id))
	return d
}

// States declares several states in order
func (d *Definition) States(ids ...StateID) *Definition {
	for _, id := range ids {
		d.State(id)
	}
	return d
}

// TransitionOption is a functional option for configuring a transition declaration
type TransitionOption func(*TransitionDescriptor)

// WithConditions attaches opaque condition data to the transition. It is
// stored on every Transition built from the declaration and never evaluated.
func WithConditions(conditions any) TransitionOption {
	return func(t *TransitionDescriptor) {
		t.Conditions = conditions
	}
}

// From adds origin states. Declaring more than one origin creates one
// Transition per origin, tried in the order given.
func From(ids ...StateID) TransitionOption {
	return func(t *TransitionDescriptor) {
		t.From = append(t.From, ids...)
	}
}

// Transition adds a transition rule
func (d *Definition) Transition(from StateID, event EventID, to StateID, opts ...TransitionOption) *Definition {
	return d.add(TransitionDescriptor{Name: event, From: StateList{from}, To: to}, opts)
}

// AnyStateTransition adds a transition declared from WildcardState
func (d *Definition) AnyStateTransition(event EventID, to StateID, opts ...TransitionOption) *Definition {
	return d.add(TransitionDescriptor{Name: event, To: to}, opts)
}

// Event adds a transition whose origins are given with From. Without From
// it is declared from WildcardState.
func (d *Definition) Event(event EventID, to StateID, opts ...TransitionOption) *Definition {
	return d.add(TransitionDescriptor{Name: event, To: to}, opts)
}

func (d *Definition) add(t TransitionDescriptor, opts []TransitionOption) *Definition {
	for _, opt := range opts {
		opt(&t)
	}
	d.config.Transitions = append(d.config.Transitions, t)
	return d
}

// Initial sets the initial state
func (d *Definition) Initial(id StateID) *Definition {
	d.config.Initial = id
	return d
}

// Chainable turns on chainable mode for the built machine
func (d *Definition) Chainable() *Definition {
	d.config.Chainable = true
	return d
}

// Wildcard sets how wildcard transitions fire
func (d *Definition) Wildcard(mode WildcardMode) *Definition {
	d.config.Wildcard = mode.String()
	return d
}

// AttachTo attaches the built machine to target, see Attach
func (d *Definition) AttachTo(target any, safe bool, alias string) *Definition {
	d.config.Target = target
	d.config.Safe = safe
	d.config.Alias = alias
	return d
}

// Config returns the underlying configuration
func (d *Definition) Config() *Config {
	return &d.config
}

// Validate checks the definition for errors
func (d *Definition) Validate() error {
	return d.config.Validate()
}

// Build creates a Machine from the definition. Building the same definition
// twice returns the same machine.
func (d *Definition) Build(opts ...MachineOption) (*Machine, error) {
	return New(&d.config, opts...)
}
