package calc

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/ardnew/calc/log"
)

// Evaluator evaluates expressions against a variable environment that it
// owns exclusively. Variables assigned by one Evaluator are never visible
// to another.
//
// All methods are safe for concurrent use; each call to [Evaluator.Eval]
// observes and updates the environment atomically.
type Evaluator struct {
	mu     sync.Mutex
	env    *Env
	logger log.Logger
	cache  bool
}

// Result is the outcome of one evaluation.
type Result struct {
	Expr     string  `json:"expr"               yaml:"expr"`
	Value    float64 `json:"value"              yaml:"value"`
	Assigned string  `json:"assigned,omitempty" yaml:"assigned,omitempty"`
	Error    string  `json:"error,omitempty"    yaml:"error,omitempty"`
}

// New returns an Evaluator with an empty environment.
func New(opts ...Option) *Evaluator {
	ev := &Evaluator{env: NewEnv(nil), cache: true}

	for _, opt := range opts {
		opt(ev)
	}

	return ev
}

// Evaluate evaluates text and returns its value. See [Evaluator.Eval].
func (ev *Evaluator) Evaluate(ctx context.Context, text string) (float64, error) {
	res, err := ev.Eval(ctx, text)

	return res.Value, err
}

// Eval compiles and evaluates text.
//
// If text has the form "name = expr", expr is evaluated and, only if that
// succeeds, its value is assigned to name and returned. A failed evaluation
// never changes the environment.
func (ev *Evaluator) Eval(ctx context.Context, text string) (Result, error) {
	res := Result{Expr: text}

	prog, err := ev.Compile(ctx, text)
	if err != nil {
		res.Error = err.Error()

		return res, err
	}

	ev.mu.Lock()
	defer ev.mu.Unlock()

	v, err := prog.Eval(ev.env)
	if err != nil {
		ev.logger.TraceContext(ctx, "evaluate failed",
			slog.String(attrExpr, text),
			slog.Any("error", err),
		)

		res.Error = err.Error()

		return res, WrapError(err).With(slog.String(attrExpr, text))
	}

	if prog.target != "" {
		ev.env.Set(prog.target, v)
		res.Assigned = prog.target
	}

	res.Value = v

	ev.logger.TraceContext(ctx, "evaluate",
		slog.String(attrExpr, text),
		slog.Float64("value", v),
		slog.String("assigned", prog.target),
	)

	return res, nil
}

// Compile compiles text, consulting the program cache unless it was
// disabled with [WithCache].
func (ev *Evaluator) Compile(ctx context.Context, text string) (*Program, error) {
	var (
		prog   *Program
		cached bool
		err    error
	)

	if ev.cache {
		prog, cached, err = compileCached(text)
	} else {
		prog, err = Compile(text)
	}

	if err != nil {
		ev.logger.TraceContext(ctx, "compile failed",
			slog.String(attrExpr, text),
			slog.Bool("cached", cached),
			slog.Any("error", err),
		)

		return nil, WrapError(err).With(slog.String(attrExpr, text))
	}

	ev.logger.TraceContext(ctx, "compile",
		slog.String(attrExpr, text),
		slog.String("postfix", prog.String()),
		slog.Bool("cached", cached),
	)

	return prog, nil
}

// Lookup returns the value of the variable name.
func (ev *Evaluator) Lookup(name string) (float64, bool) {
	ev.mu.Lock()
	defer ev.mu.Unlock()

	return ev.env.Lookup(name)
}

// Set assigns v to the variable name.
func (ev *Evaluator) Set(name string, v float64) {
	ev.mu.Lock()
	defer ev.mu.Unlock()

	ev.env.Set(name, v)
}

// Vars returns a copy of all assigned variables.
func (ev *Evaluator) Vars() map[string]float64 {
	ev.mu.Lock()
	defer ev.mu.Unlock()

	return ev.env.Vars()
}

// Replace discards all variables and assigns those in vars.
func (ev *Evaluator) Replace(vars map[string]float64) {
	ev.mu.Lock()
	defer ev.mu.Unlock()

	ev.env.Replace(vars)
}

// Names returns every name an expression may reference: assigned variables,
// then constants not shadowed by a variable, then functions. Each group is
// sorted.
func (ev *Evaluator) Names() []string {
	ev.mu.Lock()
	names := ev.env.Names()
	ev.mu.Unlock()

	for _, c := range Constants() {
		if !slices.Contains(names, c) {
			names = append(names, c)
		}
	}

	return append(names, Funcs()...)
}
