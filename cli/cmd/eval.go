package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/calc/log"
)

// Eval evaluates expressions from the command line and script files.
type Eval struct {
	Scope `embed:""`

	Output    Output   `default:"text" enum:"text,json,yaml" help:"Result format (${enum})"                              short:"o"`
	Precision int      `default:"-1"                          help:"Significant digits in text output (-1 for shortest exact)"`
	File      []string `                                      help:"Read expressions one per line ('-' for stdin)"       placeholder:"FILE" short:"f" type:"existingfile"`

	Expr []string `arg:"" help:"Expressions to evaluate after any --file input" name:"expr" optional:""`
}

// Run executes the eval command.
//
// Every expression is evaluated on one evaluator, so assignments carry
// forward. A failed expression is reported and evaluation continues; Run
// then returns [ErrEvalFailed].
func (e *Eval) Run(ctx context.Context) error {
	return e.run(ctx, os.Stdin, os.Stdout, os.Stderr)
}

func (e *Eval) run(ctx context.Context, stdin *os.File, out, errOut io.Writer) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ev, err := e.evaluator(ctx)
	if err != nil {
		return err
	}

	src, err := openSources(e.File, stdin)
	if err != nil {
		return ErrReadSource.Wrap(err)
	}
	defer src.Close()

	if src.IsZero() && len(e.Expr) == 0 {
		if isTerminal(stdin) {
			return ErrNoInput
		}

		src.stdin = stdin
	}

	p := newPrinter(out, errOut, e.Output, e.Precision)

	var total, failed int

	eval := func(text string) error {
		total++

		res, err := ev.Eval(ctx, text)
		if err != nil {
			failed++

			log.DebugContext(ctx, "expression failed", slog.Any("error", err))
		}

		return p.print(ctx, res, err)
	}

	for line, err := range src.Lines() {
		if err != nil {
			return ErrReadSource.Wrap(err)
		}

		if err := eval(line); err != nil {
			return err
		}
	}

	for _, text := range e.Expr {
		if src.Exited() || text == exitLine {
			break
		}

		if err := eval(text); err != nil {
			return err
		}
	}

	if failed > 0 {
		return ErrEvalFailed.
			With(slog.Int("failed", failed), slog.Int("total", total)).
			Wrap(fmt.Errorf("%d of %d expressions", failed, total))
	}

	return nil
}
