package runtime

import (
	"errors"
	"fmt"
)

// ErrUndefinedVariable is wrapped by lookups and assignments of unknown names.
var ErrUndefinedVariable = errors.New("undefined variable")

// Environment maps names to values. Programs have no blocks, so a single
// global environment holds every binding.
type Environment struct {
	values map[string]Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Define inserts or replaces a binding. Redeclaring a name is allowed.
func (e *Environment) Define(name string, value Value) {
	if value == nil {
		value = Nil
	}
	e.values[name] = value
}

// Assign updates an existing binding.
func (e *Environment) Assign(name string, value Value) error {
	if _, ok := e.values[name]; !ok {
		return fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
	}
	if value == nil {
		value = Nil
	}
	e.values[name] = value
	return nil
}

// Get retrieves a binding.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
}
