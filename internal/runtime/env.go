package runtime

import (
	"sort"
	"sun-lang/internal/diag"
	"sun-lang/internal/span"
)

// Environment represents a variable scope with a parent chain. A child only
// reads through its parent pointer; it never mutates the parent's bindings.
type Environment struct {
	values map[string]Value
	consts map[string]bool // tracks which names are const
	parent *Environment
}

// NewEnvironment creates a new environment with an optional parent scope.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		consts: make(map[string]bool),
		parent: parent,
	}
}

// NewGlobalEnvironment creates a root scope seeded with the constants
// true, false and nil.
func NewGlobalEnvironment() *Environment {
	env := NewEnvironment(nil)
	registerGlobals(env)
	return env
}

// Parent returns the enclosing scope, or nil for the root.
func (e *Environment) Parent() *Environment {
	return e.parent
}

// DeclareVar binds name in this scope and returns value.
//
// If name is already bound here, isReassign decides: true drops the old
// binding and stores value with the given constancy, false is a
// declaration conflict. Constancy is recorded but not enforced, so a
// reassignment replaces even a constant binding.
func (e *Environment) DeclareVar(name string, value Value, constant, isReassign bool) (Value, error) {
	if _, exists := e.values[name]; exists {
		if !isReassign {
			return Nil(), diag.NewFatal(diag.CodeRedeclared, span.Span{},
				"cannot declare variable %q: it is already defined", name)
		}
		delete(e.values, name)
		delete(e.consts, name)
	}
	e.values[name] = value
	if constant {
		e.consts[name] = true
	}
	return value, nil
}

// LookUpVar resolves name through the scope chain and returns a copy of
// the bound value.
func (e *Environment) LookUpVar(name string) (Value, error) {
	env, err := e.Resolve(name)
	if err != nil {
		return Nil(), err
	}
	return env.values[name].Clone(), nil
}

// Resolve returns the nearest scope, starting with e, that binds name.
func (e *Environment) Resolve(name string) (*Environment, error) {
	for env := e; env != nil; env = env.parent {
		if _, exists := env.values[name]; exists {
			return env, nil
		}
	}
	return nil, diag.NewFatal(diag.CodeUnresolved, span.Span{},
		"cannot resolve %q as it does not exist", name)
}

// IsConstant reports whether name is bound in this scope and marked constant.
func (e *Environment) IsConstant(name string) bool {
	return e.consts[name]
}

// Has reports whether name is bound in this scope (parents are not searched).
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Names returns the names bound in this scope, sorted.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
