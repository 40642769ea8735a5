package fsm

// Trigger fires one event on the machine it was taken from
type Trigger func() Result

// Result describes one attempt to fire an event
type Result struct {
	Event EventID
	From  StateID // Current state when the event was fired
	To    StateID // Destination, empty on a miss
	Fired bool

	machine *Machine
}

// Ok reports whether a transition fired
func (r Result) Ok() bool {
	return r.Fired
}

// State returns the destination state and whether a transition fired
func (r Result) State() (StateID, bool) {
	return r.To, r.Fired
}

// Machine returns the machine the event was fired on
func (r Result) Machine() *Machine {
	return r.machine
}

// Value returns the machine in chainable mode. Otherwise it returns the
// destination StateID when a transition fired and false when none did.
func (r Result) Value() any {
	if r.machine != nil && r.machine.Chainable() {
		return r.machine
	}
	if !r.Fired {
		return false
	}
	return r.To
}

// Then fires event on the same machine. In chainable mode the chain always
// continues. Otherwise a missed result has nothing to chain on and is
// returned unchanged.
func (r Result) Then(event EventID) Result {
	if r.machine == nil {
		return r
	}
	if !r.Fired && !r.machine.Chainable() {
		return r
	}
	return r.machine.Fire(event)
}
