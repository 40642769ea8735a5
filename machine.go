package fsm

import (
	"fmt"
	"log/slog"
	"sync"
)

// Machine is the runtime FSM instance. It owns the state and transition
// registries and the current/previous cursor.
type Machine struct {
	mu sync.RWMutex

	states      map[StateID]*State
	stateOrder  []StateID
	transitions map[EventID][]*Transition
	eventOrder  []EventID
	triggers    map[EventID]Trigger

	current     StateID
	previous    StateID
	hasPrevious bool

	chainable bool
	wildcard  WildcardMode

	data                 any
	logger               *slog.Logger
	stateChangeCallbacks []func(*Context)
	missCallbacks        []func(*Context)
}

// MachineOption is a functional option for configuring a Machine
type MachineOption func(*Machine)

// WithLogger sets the logger for the machine
func WithLogger(logger *slog.Logger) MachineOption {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithData sets the application data accessible via Context
func WithData(data any) MachineOption {
	return func(m *Machine) {
		m.data = data
	}
}

// WithStateChangeCallback adds a callback invoked after each successful fire.
// Callbacks run in the order they were added.
func WithStateChangeCallback(fn func(*Context)) MachineOption {
	return func(m *Machine) {
		if fn != nil {
			m.stateChangeCallbacks = append(m.stateChangeCallbacks, fn)
		}
	}
}

// WithMissCallback adds a callback invoked when a fired event matches no transition
func WithMissCallback(fn func(*Context)) MachineOption {
	return func(m *Machine) {
		if fn != nil {
			m.missCallbacks = append(m.missCallbacks, fn)
		}
	}
}

// WithChainable overrides Config.Chainable
func WithChainable(chainable bool) MachineOption {
	return func(m *Machine) {
		m.chainable = chainable
	}
}

// WithWildcardMode overrides Config.Wildcard
func WithWildcardMode(mode WildcardMode) MachineOption {
	return func(m *Machine) {
		m.wildcard = mode
	}
}

// New builds a Machine from cfg. Calling New again with the same *Config
// returns the machine built the first time; opts are then ignored.
func New(cfg *Config, opts ...MachineOption) (*Machine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.machine != nil {
		return cfg.machine, nil
	}

	mode, err := ParseWildcardMode(cfg.Wildcard)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		states:      make(map[StateID]*State),
		transitions: make(map[EventID][]*Transition),
		triggers:    make(map[EventID]Trigger),
		chainable:   cfg.Chainable,
		wildcard:    mode,
		logger:      Logger,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.build(cfg); err != nil {
		return nil, err
	}

	if cfg.Target != nil {
		if err := attach(cfg.Target, cfg.Safe, cfg.Alias, m); err != nil {
			return nil, err
		}
	}

	cfg.machine = m
	return m, nil
}

// build registers every state mentioned by cfg before any transition is
// created, then the transitions, then enters the initial state.
func (m *Machine) build(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, desc := range cfg.States {
		if err := m.addStateLocked(desc); err != nil {
			return fmt.Errorf("state: %w", err)
		}
	}
	for _, td := range cfg.Transitions {
		mentioned := make([]StateID, 0, len(td.From)+2)
		mentioned = append(mentioned, td.origins()...)
		mentioned = append(mentioned, td.To)
		for _, id := range mentioned {
			if id == "" {
				continue
			}
			if err := m.addStateLocked(S(id)); err != nil {
				return err
			}
		}
	}

	for _, td := range cfg.Transitions {
		if err := m.addTransitionLocked(td); err != nil {
			return err
		}
	}

	initial := cfg.Initial
	if initial == "" {
		initial = InitialState
		if err := m.addStateLocked(S(initial)); err != nil {
			return err
		}
	}
	if err := m.setStateLocked(initial); err != nil {
		return fmt.Errorf("initial state: %w", err)
	}
	return nil
}

// AddStates registers states after construction. Registering a known name is a no-op.
func (m *Machine) AddStates(descs ...StateDescriptor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, desc := range descs {
		if err := m.addStateLocked(desc); err != nil {
			return fmt.Errorf("state: %w", err)
		}
	}
	return nil
}

// AddTransitions registers transitions after construction, creating missing
// endpoint states. Every descriptor is checked first; if any is invalid
// nothing is registered.
func (m *Machine) AddTransitions(descs ...TransitionDescriptor) error {
	for _, td := range descs {
		if err := td.validate(); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, td := range descs {
		if err := m.addTransitionLocked(td); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) addStateLocked(desc StateDescriptor) error {
	if _, ok := m.states[desc.Name]; ok {
		return nil
	}
	s, err := newState(desc)
	if err != nil {
		return err
	}
	m.states[s.ID] = s
	m.stateOrder = append(m.stateOrder, s.ID)
	m.logger.Debug("state registered", "state", s.ID)
	return nil
}

func (m *Machine) addTransitionLocked(td TransitionDescriptor) error {
	if err := td.validate(); err != nil {
		return err
	}
	origins := td.origins()

	event := td.Name
	if _, ok := m.transitions[event]; !ok {
		m.transitions[event] = nil
		m.eventOrder = append(m.eventOrder, event)
		m.triggers[event] = func() Result {
			return m.Fire(event)
		}
	}

	for _, from := range origins {
		t, err := newTransition(event, m, from, td.To, td.Conditions)
		if err != nil {
			return err
		}
		m.transitions[event] = append(m.transitions[event], t)
	}
	return nil
}

// Current returns the name of the active state
func (m *Machine) Current() StateID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Previous returns the state active before the last successful transition.
// ok is false until a transition has fired.
func (m *Machine) Previous() (id StateID, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previous, m.hasPrevious
}

// Is reports whether the current state is one of ids
func (m *Machine) Is(ids ...StateID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range ids {
		if id == m.current {
			return true
		}
	}
	return false
}

// IsState reports whether id is the current state
func (m *Machine) IsState(id StateID) bool {
	return m.Is(id)
}

// Predicate returns a function reporting whether id is the current state
func (m *Machine) Predicate(id StateID) func() bool {
	return func() bool {
		return m.Is(id)
	}
}

// Predicates returns one predicate per registered state
func (m *Machine) Predicates() map[StateID]func() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[StateID]func() bool, len(m.states))
	for id := range m.states {
		out[id] = m.Predicate(id)
	}
	return out
}

// HasState reports whether id is registered
func (m *Machine) HasState(id StateID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.states[id]
	return ok
}

// GetState looks up a registered state. It fails with a *StateError for unknown names.
func (m *Machine) GetState(id StateID) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getStateLocked(id)
}

func (m *Machine) getStateLocked(id StateID) (*State, error) {
	s, ok := m.states[id]
	if !ok {
		return nil, &StateError{State: id}
	}
	return s, nil
}

// setStateLocked is the only place the cursor moves
func (m *Machine) setStateLocked(id StateID) error {
	s, err := m.getStateLocked(id)
	if err != nil {
		return err
	}
	if m.current != "" {
		m.previous = m.current
		m.hasPrevious = true
	}
	m.current = s.ID
	return nil
}

// Can reports whether some transition for event leaves the current state or
// is declared from WildcardState. It is a capability probe: under
// WildcardLiteral a wildcard transition counts here even though Fire would
// not take it.
func (m *Machine) Can(event EventID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.transitions[event] {
		if t.From.ID == m.current || t.IsWildcard() {
			return true
		}
	}
	return false
}

// AllowedEvents returns the events declared from the current state, in declaration order
func (m *Machine) AllowedEvents() []EventID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.states[m.current].AllowedEvents()
}

// AllowedEventsFrom returns the events declared from id, or nil if id is unknown
func (m *Machine) AllowedEventsFrom(id StateID) []EventID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.states[id]
	if !ok {
		return nil
	}
	return s.AllowedEvents()
}

// Fire attempts the event from the current state. The first transition in
// declaration order whose origin equals the current state wins. Under
// WildcardAny a wildcard transition is taken when no exact origin matches.
// A miss leaves the cursor untouched.
func (m *Machine) Fire(event EventID) Result {
	m.mu.Lock()
	from := m.current
	m.logger.Debug("firing event", "event", event, "state", from)

	t := m.resolveLocked(event)
	if t == nil {
		m.mu.Unlock()
		m.logger.Debug("no transition found", "event", event, "state", from)
		m.notify(m.missCallbacks, event, from, "")
		return Result{Event: event, From: from, machine: m}
	}

	if err := m.setStateLocked(t.To.ID); err != nil {
		// Destination states are registered with the transition.
		m.mu.Unlock()
		m.logger.Error("transition to unknown state", "event", event, "to", t.To.ID, "error", err)
		return Result{Event: event, From: from, machine: m}
	}
	m.mu.Unlock()

	m.logger.Debug("transitioned", "event", event, "from", from, "to", t.To.ID)
	m.notify(m.stateChangeCallbacks, event, from, t.To.ID)
	return Result{Event: event, From: from, To: t.To.ID, Fired: true, machine: m}
}

func (m *Machine) resolveLocked(event EventID) *Transition {
	var fallback *Transition
	for _, t := range m.transitions[event] {
		if t.From.ID == m.current {
			return t
		}
		if fallback == nil && m.wildcard == WildcardAny && t.IsWildcard() {
			fallback = t
		}
	}
	return fallback
}

func (m *Machine) notify(fns []func(*Context), event EventID, from, to StateID) {
	if len(fns) == 0 {
		return
	}
	ctx := &Context{
		FSM:       m,
		Event:     event,
		FromState: from,
		ToState:   to,
		Data:      m.data,
		Logger:    m.logger,
	}
	for _, fn := range fns {
		fn(ctx)
	}
}

// Trigger returns the callable trigger for event
func (m *Machine) Trigger(event EventID) (Trigger, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.triggers[event]
	return t, ok
}

// Triggers returns a copy of the event name to trigger table
func (m *Machine) Triggers() map[EventID]Trigger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[EventID]Trigger, len(m.triggers))
	for k, v := range m.triggers {
		out[k] = v
	}
	return out
}

// SetChainable switches the value returned by Result.Value and the behavior of Result.Then
func (m *Machine) SetChainable(chainable bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chainable = chainable
}

// Chainable reports whether chainable mode is on
func (m *Machine) Chainable() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.chainable
}

// WildcardMode returns how wildcard transitions are matched when firing
func (m *Machine) WildcardMode() WildcardMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.wildcard
}

// States returns the registered state names in registration order
func (m *Machine) States() []StateID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]StateID, len(m.stateOrder))
	copy(out, m.stateOrder)
	return out
}

// Events returns the registered event names in declaration order
func (m *Machine) Events() []EventID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]EventID, len(m.eventOrder))
	copy(out, m.eventOrder)
	return out
}

// Transitions returns every transition, grouped by event in declaration order
func (m *Machine) Transitions() []*Transition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Transition
	for _, event := range m.eventOrder {
		out = append(out, m.transitions[event]...)
	}
	return out
}
