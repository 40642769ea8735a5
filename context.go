package fsm

import "log/slog"

// Context is passed to state change and miss callbacks
type Context struct {
	FSM       *Machine
	Event     EventID // Event that was fired
	FromState StateID // State the event was fired from
	ToState   StateID // Destination state, empty when no transition matched
	Data      any     // User-provided application data
	Logger    *slog.Logger
}

// CurrentState returns the current state of the machine
func (c *Context) CurrentState() StateID {
	return c.FSM.Current()
}

// IsInState checks if the given state is the current state
func (c *Context) IsInState(id StateID) bool {
	return c.FSM.Is(id)
}

// Fired reports whether the event moved the machine
func (c *Context) Fired() bool {
	return c.ToState != ""
}
