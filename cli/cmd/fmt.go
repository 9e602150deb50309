package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/ardnew/calc/calc"
)

// Fmt prints intermediate forms of an expression without evaluating it.
type Fmt struct {
	Tokens  Tokens  `cmd:"" help:"Print the token sequence"`
	Postfix Postfix `cmd:"" help:"Print the postfix (RPN) form"`
}

// FmtFlags are the output flags shared by the fmt subcommands.
type FmtFlags struct {
	Output Output `default:"text" enum:"text,json,yaml" help:"Output format (${enum})" short:"o"`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML output" short:"i"`

	Expr string `arg:"" help:"Expression to format" name:"expr"`
}

// Tokens prints the tokens of an expression.
type Tokens struct {
	FmtFlags `embed:""`
}

// Run executes the fmt tokens command.
func (t *Tokens) Run(ctx context.Context) error {
	return t.write(ctx, os.Stdout)
}

func (t *Tokens) write(ctx context.Context, w io.Writer) error {
	toks, err := calc.Tokenize(t.Expr)
	if err != nil {
		return ErrInvalidInput.With(slog.String("expr", t.Expr)).Wrap(err)
	}

	if t.Output != OutputText {
		if toks == nil {
			toks = []calc.Token{}
		}

		return t.Output.encode(ctx, w, toks, t.Indent)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for _, tok := range toks {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", tok.Pos, tok.Kind, tok.Text)
	}

	return tw.Flush()
}

// Postfix prints the postfix form of an expression.
type Postfix struct {
	FmtFlags `embed:""`
}

// postfixDoc is the structured form of a compiled expression.
type postfixDoc struct {
	Expr    string       `json:"expr"             yaml:"expr"`
	Target  string       `json:"target,omitempty" yaml:"target,omitempty"`
	Postfix []calc.Token `json:"postfix"          yaml:"postfix"`
}

// Run executes the fmt postfix command.
func (p *Postfix) Run(ctx context.Context) error {
	return p.write(ctx, os.Stdout)
}

func (p *Postfix) write(ctx context.Context, w io.Writer) error {
	prog, err := calc.Compile(p.Expr)
	if err != nil {
		return ErrInvalidInput.With(slog.String("expr", p.Expr)).Wrap(err)
	}

	if p.Output == OutputText {
		_, err := fmt.Fprintln(w, prog)

		return err
	}

	return p.Output.encode(ctx, w, postfixDoc{
		Expr:    prog.Source(),
		Target:  prog.Target(),
		Postfix: prog.Postfix(),
	}, p.Indent)
}
