package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/calc/calc"
	"github.com/ardnew/calc/log"
)

// Scope holds the flags that seed a new evaluator. It is embedded by every
// command that evaluates expressions.
type Scope struct {
	Define  []string `help:"Assign a variable before evaluating (repeatable)" placeholder:"NAME=EXPR" sep:"none" short:"D"`
	Vars    string   `help:"Read variables from a YAML mapping of names to numbers" placeholder:"FILE" type:"existingfile"`
	NoCache bool     `help:"Disable the compiled program cache"`
}

// evaluator builds an evaluator seeded from the variables file, then from
// each definition in order.
func (s Scope) evaluator(ctx context.Context) (*calc.Evaluator, error) {
	opts := []calc.Option{
		calc.WithLogger(log.Default()),
		calc.WithCache(!s.NoCache),
	}

	if s.Vars != "" {
		vars, err := readVarsFile(ctx, s.Vars)
		if err != nil {
			return nil, err
		}

		opts = append(opts, calc.WithVars(vars))
	}

	ev := calc.New(opts...)

	for _, def := range s.Define {
		prog, err := calc.Compile(def)
		if err == nil && prog.Target() == "" {
			err = calc.ErrMalformedExpression
		}

		if err == nil {
			_, err = ev.Eval(ctx, def)
		}

		if err != nil {
			return nil, ErrDefine.With(slog.String("define", def)).Wrap(err)
		}
	}

	log.DebugContext(ctx, "evaluator ready",
		slog.Int("vars", len(ev.Vars())),
		slog.Bool("cache", !s.NoCache),
	)

	return ev, nil
}

func readVarsFile(ctx context.Context, path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadVars.With(slog.String("file", path)).Wrap(err)
	}
	defer f.Close()

	vars, err := calc.ReadVars(ctx, f)
	if err != nil {
		return nil, ErrReadVars.With(slog.String("file", path)).Wrap(err)
	}

	return vars, nil
}
