package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/calc/cli/cmd/repl"
	"github.com/ardnew/calc/log"
)

// Repl starts an interactive session. Variables persist across lines.
type Repl struct {
	Scope `embed:""`

	Plain     bool `help:"Use a line-editing prompt instead of the full-screen interface"`
	NoHistory bool `help:"Do not read or record the history file"`
	Precision int  `default:"-1" help:"Significant digits in results (-1 for shortest exact)"`
}

// Run executes the repl command.
//
// Stdin that is not a terminal is read line by line without prompts, so a
// REPL session can be scripted.
func (r *Repl) Run(ctx context.Context) error {
	ev, err := r.evaluator(ctx)
	if err != nil {
		return err
	}

	opts := repl.Options{
		History:   r.history(ctx),
		Precision: r.Precision,
		Logger:    log.Default(),
	}

	switch {
	case !isTerminal(os.Stdin) || !isTerminal(os.Stdout):
		return repl.RunLines(ctx, ev, os.Stdin, os.Stdout, os.Stderr, opts)
	case r.Plain:
		return repl.RunReadline(ctx, ev, opts)
	default:
		return repl.Run(ctx, ev, opts)
	}
}

// history loads the history file from the cache directory. A history that
// cannot be loaded is kept in memory only.
func (r *Repl) history(ctx context.Context) *repl.History {
	dir := kongVar(ctx, CacheIdentifier, "")
	if r.NoHistory || dir == "" {
		return repl.NewHistory("")
	}

	h := repl.NewHistory(filepath.Join(dir, repl.HistoryFile))
	if err := h.Load(); err != nil {
		log.WarnContext(ctx, "history unavailable", slog.Any("error", err))

		return repl.NewHistory("")
	}

	return h
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
