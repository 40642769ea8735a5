package fsm

import (
	"errors"
	"fmt"
)

var (
	// ErrStateNotRegistered is returned when a state is looked up by a name the machine does not know
	ErrStateNotRegistered = errors.New("state not registered")

	// ErrEmptyName is returned when a state or transition has no usable name
	ErrEmptyName = errors.New("empty name")

	// ErrInvalidTarget is returned when a machine cannot be attached to the configured target
	ErrInvalidTarget = errors.New("invalid attach target")

	// ErrInvalidWildcardMode is returned for an unrecognized wildcard mode
	ErrInvalidWildcardMode = errors.New("invalid wildcard mode")
)

// StateError carries the offending state name of a failed lookup
type StateError struct {
	State StateID
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s is not a registered state", e.State)
}

func (e *StateError) Unwrap() error {
	return ErrStateNotRegistered
}

type modeError struct {
	value string
}

func (e *modeError) Error() string {
	return fmt.Sprintf("invalid wildcard mode %q", e.value)
}

func (e *modeError) Unwrap() error {
	return ErrInvalidWildcardMode
}
