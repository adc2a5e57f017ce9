package symtab

import "fmt"

// Table is a stack of environments addressed by integer ids. Pushing creates
// a child of the current environment; SetEnvironmentID re-roots the stack at
// any live environment, which is how a call runs against the global scope
// instead of the caller's.
type Table[T any] struct {
	current *Environment[T]
	live    map[int]*Environment[T]
	nextID  int
}

func New[T any]() *Table[T] {
	return &Table[T]{live: make(map[int]*Environment[T])}
}

// PushEnvironment opens a scope nested in the current one.
func (t *Table[T]) PushEnvironment() {
	env := newEnvironment(t.nextID, t.current)
	t.nextID++
	t.live[env.id] = env
	t.current = env
}

// PopEnvironment closes the current scope. Popping an empty table is a bug in
// the calling pass.
func (t *Table[T]) PopEnvironment() {
	if t.current == nil {
		panic("symtab: pop of empty environment stack")
	}
	delete(t.live, t.current.id)
	t.current = t.current.parent
}

// EnvironmentID returns the id of the current environment, or -1 when empty.
func (t *Table[T]) EnvironmentID() int {
	if t.current == nil {
		return -1
	}
	return t.current.id
}

// SetEnvironmentID makes a live environment current.
func (t *Table[T]) SetEnvironmentID(id int) error {
	env, ok := t.live[id]
	if !ok {
		return fmt.Errorf("symtab: no live environment with id %d", id)
	}
	t.current = env
	return nil
}

// Current exposes the current environment.
func (t *Table[T]) Current() *Environment[T] {
	return t.current
}

// Depth counts the environments visible from the current one.
func (t *Table[T]) Depth() int {
	n := 0
	for env := t.current; env != nil; env = env.parent {
		n++
	}
	return n
}

// AddName binds name in the innermost environment only.
func (t *Table[T]) AddName(name string, value T) {
	t.mustCurrent().Define(name, value)
}

// Set rebinds name in the nearest environment where it is visible.
func (t *Table[T]) Set(name string, value T) error {
	return t.mustCurrent().Assign(name, value)
}

// Lookup finds name, searching from the innermost environment outward.
func (t *Table[T]) Lookup(name string) (T, bool) {
	if t.current == nil {
		var zero T
		return zero, false
	}
	return t.current.Get(name)
}

func (t *Table[T]) NameExists(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

func (t *Table[T]) NameExistsInCurrent(name string) bool {
	return t.current != nil && t.current.HasLocal(name)
}

func (t *Table[T]) mustCurrent() *Environment[T] {
	if t.current == nil {
		panic("symtab: no current environment")
	}
	return t.current
}
