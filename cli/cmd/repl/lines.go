package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/lmorg/readline"

	"github.com/ardnew/calc/calc"
)

// ctrlPrefix introduces a control command on a line-oriented front end.
const ctrlPrefix = ":"

// session evaluates lines for the line-oriented front ends.
type session struct {
	ev      *calc.Evaluator
	opts    Options
	out     io.Writer
	errOut  io.Writer
	value   *color.Color
	failure *color.Color
	hint    *color.Color
}

func newSession(ev *calc.Evaluator, out, errOut io.Writer, opts Options) *session {
	opts.History = opts.history()

	return &session{
		ev:      ev,
		opts:    opts,
		out:     out,
		errOut:  errOut,
		value:   color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		hint:    color.New(color.FgHiBlack),
	}
}

// line handles one line of input and reports whether the session continues.
func (s *session) line(ctx context.Context, input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return true
	}

	if input == "exit" || input == "quit" {
		return false
	}

	if cmd, ok := strings.CutPrefix(input, ctrlPrefix); ok {
		_, _ = s.opts.History.WriteWithMode(cmd, modeCtrl)

		return s.command(ctx, strings.TrimSpace(cmd))
	}

	_, _ = s.opts.History.WriteWithMode(input, modeEval)

	s.opts.Logger.TraceContext(ctx, "repl eval", slog.String("input", input))

	res, err := s.ev.Eval(ctx, input)
	if err != nil {
		s.failure.Fprintln(s.errOut, "error: "+err.Error())

		return true
	}

	s.value.Fprintln(s.out, formatResult(res, s.opts.Precision))

	return true
}

// command runs a control command. Commands needing a terminal are refused.
func (s *session) command(ctx context.Context, input string) bool {
	cmd, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	s.opts.Logger.TraceContext(ctx, "repl exec command",
		slog.String("command", cmd),
		slog.String("arg", arg),
	)

	switch cmd {
	case "q", "quit", "exit":
		return false

	case "h", "help":
		fmt.Fprintln(s.out, strings.ReplaceAll(helpMessage(), "press Esc to toggle mode", "prefix with "+ctrlPrefix))

	case "v", "vars":
		vars := s.ev.Vars()
		if len(vars) == 0 {
			s.hint.Fprintln(s.out, "  (no variables)")

			break
		}

		for _, name := range s.ev.Names() {
			if v, ok := vars[name]; ok {
				fmt.Fprintf(s.out, "  %s = %s\n", name, s.value.Sprint(calc.FormatValue(v, s.opts.Precision)))
			}
		}

	case "f", "funcs":
		for _, name := range calc.Funcs() {
			sig, doc, _ := signature(name)
			fmt.Fprintf(s.out, "  %-8s %s\n", sig, s.hint.Sprint(doc))
		}

	case "rpn":
		out, err := rpn(arg)
		if err != nil {
			s.failure.Fprintln(s.errOut, "error: "+err.Error())

			break
		}

		s.value.Fprintln(s.out, out)

	case "r", "reset":
		s.ev.Replace(nil)
		s.hint.Fprintln(s.out, "variables cleared")

	case "e", "edit", "c", "clear":
		s.failure.Fprintln(s.errOut, "error: "+cmd+" requires the full-screen REPL")

	default:
		s.failure.Fprintln(s.errOut, "Unknown command: "+cmd+" (try '"+ctrlPrefix+"help')")
	}

	return true
}

// RunLines evaluates each line read from in until EOF, an exit line, or
// cancellation of ctx.
func RunLines(
	ctx context.Context,
	ev *calc.Evaluator,
	in io.Reader,
	out, errOut io.Writer,
	opts Options,
) error {
	s := newSession(ev, out, errOut, opts)

	opts.Logger.TraceContext(ctx, "repl start", slog.String("frontend", "lines"))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		if !s.line(ctx, scanner.Text()) {
			return nil
		}
	}

	return scanner.Err()
}

// Line editor errors are reported by message.
const (
	readlineCtrlC = "Ctrl+C"
	readlineEOF   = "EOF"
)

// RunReadline runs a line-editing prompt on the terminal. It is the plain
// alternative to the full-screen [Run].
func RunReadline(ctx context.Context, ev *calc.Evaluator, opts Options) error {
	s := newSession(ev, color.Output, color.Error, opts)

	rl := readline.NewInstance()
	rl.SetPrompt(evalPrompt)
	rl.History = recorded{s.opts.History}
	rl.TabCompleter = tabCompleter(ev)
	rl.HintText = hintText

	opts.Logger.TraceContext(ctx, "repl start",
		slog.String("frontend", "readline"),
		slog.Int("history", s.opts.History.Len()),
	)

	for ctx.Err() == nil {
		line, err := rl.Readline()
		if err != nil {
			switch err.Error() {
			case readlineCtrlC:
				continue
			case readlineEOF:
				return nil
			}

			return err
		}

		if !s.line(ctx, line) {
			return nil
		}
	}

	return nil
}

// recorded exposes a History to the line editor for navigation only. Lines
// are recorded with their mode by the session.
type recorded struct{ *History }

func (r recorded) Write(line string) (int, error) { return len(line), nil }

// tabCompleter completes the identifier before the cursor against the names
// known to ev.
func tabCompleter(ev *calc.Evaluator) func([]rune, int, readline.DelayedTabContext) (
	string, []string, map[string]string, readline.TabDisplayType,
) {
	return func(line []rune, pos int, _ readline.DelayedTabContext) (
		string, []string, map[string]string, readline.TabDisplayType,
	) {
		input := string(line[:min(pos, len(line))])

		word, _, _ := wordBounds(input, len(input))

		var cands []string

		if strings.HasPrefix(strings.TrimSpace(input), ctrlPrefix) {
			cands = ctrlCommands
		} else {
			cands = ev.Names()
		}

		var suggestions []string

		if completable(word) {
			for _, name := range cands {
				if rest, ok := strings.CutPrefix(name, word); ok {
					suggestions = append(suggestions, rest)
				}
			}
		}

		return word, suggestions, nil, readline.TabDisplayGrid
	}
}

// hintText shows the signature of the function call enclosing the cursor.
func hintText(line []rune, pos int) []rune {
	input := string(line)

	call := detectFunctionCall(input, len(string(line[:min(pos, len(line))])))
	if !call.inCall {
		return nil
	}

	sig, doc, ok := signature(call.name)
	if !ok {
		return nil
	}

	return []rune(sig + "  " + doc)
}
