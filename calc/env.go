package calc

import (
	"maps"
	"slices"
)

// Vars resolves variable names during evaluation.
type Vars interface {
	Lookup(name string) (float64, bool)
}

// Env is a variable environment. It holds only assigned variables; the
// built-in constants are resolved by [EvalPostfix] when a name is absent.
//
// Env is not safe for concurrent use. [Evaluator] serializes access to the
// Env it owns.
type Env struct {
	vars map[string]float64
}

// NewEnv returns an Env holding a copy of seed.
func NewEnv(seed map[string]float64) *Env {
	e := &Env{vars: make(map[string]float64, len(seed))}
	maps.Copy(e.vars, seed)

	return e
}

// Lookup returns the value last assigned to name.
func (e *Env) Lookup(name string) (float64, bool) {
	v, ok := e.vars[name]

	return v, ok
}

// Set assigns v to name.
func (e *Env) Set(name string, v float64) {
	if e.vars == nil {
		e.vars = make(map[string]float64)
	}

	e.vars[name] = v
}

// Len returns the number of assigned variables.
func (e *Env) Len() int { return len(e.vars) }

// Names returns the sorted names of all assigned variables.
func (e *Env) Names() []string { return slices.Sorted(maps.Keys(e.vars)) }

// Vars returns a copy of all assigned variables.
func (e *Env) Vars() map[string]float64 { return maps.Clone(e.vars) }

// Replace discards all variables and assigns those in vars.
func (e *Env) Replace(vars map[string]float64) {
	if e.vars == nil {
		e.vars = make(map[string]float64, len(vars))
	}

	clear(e.vars)
	maps.Copy(e.vars, vars)
}
