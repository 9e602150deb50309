package calc

import (
	"maps"

	"github.com/ardnew/calc/log"
)

// Option configures an [Evaluator].
type Option func(*Evaluator)

// WithLogger sets the logger used to trace compilation and evaluation.
// The zero [log.Logger] discards everything.
func WithLogger(logger log.Logger) Option {
	return func(ev *Evaluator) { ev.logger = logger }
}

// WithVars seeds the variable environment. Later options override earlier
// ones for the same name.
func WithVars(vars map[string]float64) Option {
	return func(ev *Evaluator) {
		seed := ev.env.Vars()
		maps.Copy(seed, vars)
		ev.env.Replace(seed)
	}
}

// WithCache controls whether compiled programs are shared through the
// process-wide program cache. It is enabled by default.
func WithCache(enable bool) Option {
	return func(ev *Evaluator) { ev.cache = enable }
}
