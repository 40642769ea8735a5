package fsm

import "log/slog"

// StateID is a unique identifier for a state
type StateID string

// EventID identifies a transition event. Several transitions may share one.
type EventID string

// WildcardState is the from-state sentinel meaning "any state"
const WildcardState StateID = "*"

// InitialState is registered and used when no initial state is configured
const InitialState StateID = "initial"

// DefaultAlias is the field name used to attach a machine in safe mode
const DefaultAlias = "fsm"

// WildcardMode controls how transitions declared from WildcardState are matched when firing
type WildcardMode int

const (
	// WildcardLiteral only fires a wildcard transition when the current state
	// is literally "*". Can still reports wildcard transitions as available.
	WildcardLiteral WildcardMode = iota
	// WildcardAny fires a wildcard transition from any state when no exact
	// from-state transition matches.
	WildcardAny
)

// String returns the configuration spelling of the mode
func (w WildcardMode) String() string {
	switch w {
	case WildcardLiteral:
		return "literal"
	case WildcardAny:
		return "any"
	default:
		return "unknown"
	}
}

// ParseWildcardMode parses "literal", "any" or "" (literal)
func ParseWildcardMode(s string) (WildcardMode, error) {
	switch s {
	case "", "literal":
		return WildcardLiteral, nil
	case "any":
		return WildcardAny, nil
	default:
		return WildcardLiteral, &modeError{value: s}
	}
}

// Logger is the default logger used when none is provided
var Logger = slog.Default()
