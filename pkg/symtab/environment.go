// Package symtab provides the scoped symbol table shared by the type checker
// (payload: declared types) and the interpreter (payload: runtime values).
package symtab

import "fmt"

// Environment holds one scope's bindings.
type Environment[T any] struct {
	id     int
	values map[string]T
	parent *Environment[T]
}

func newEnvironment[T any](id int, parent *Environment[T]) *Environment[T] {
	return &Environment[T]{
		id:     id,
		values: make(map[string]T),
		parent: parent,
	}
}

// Define inserts or shadows a binding in this scope.
func (e *Environment[T]) Define(name string, value T) {
	e.values[name] = value
}

// Assign updates an existing binding in the first scope where it appears.
func (e *Environment[T]) Assign(name string, value T) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return fmt.Errorf("undefined name '%s'", name)
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment[T]) Get(name string) (T, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func (e *Environment[T]) HasLocal(name string) bool {
	_, ok := e.values[name]
	return ok
}
