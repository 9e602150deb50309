package calc

import (
	"slices"
	"strings"
)

// Program is a compiled expression: its infix tokens, its postfix form and,
// for an assignment "name = expr", the target name. A Program is immutable
// and may be evaluated any number of times against different variables.
type Program struct {
	source  string
	target  string
	infix   []Token
	postfix []Token
}

// Compile tokenizes text and converts it to postfix.
//
// When text begins with an identifier followed by "=", the identifier is
// the assignment target and only the remaining tokens are converted.
func Compile(text string) (*Program, error) {
	infix, err := Tokenize(text)
	if err != nil {
		return nil, err
	}

	p := &Program{source: text, infix: infix}

	rhs := infix
	if len(infix) >= 2 && infix[0].Kind == Identifier && infix[1].is(Operator, "=") {
		p.target = infix[0].Text
		rhs = infix[2:]
	}

	p.postfix, err = ToPostfix(rhs)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Source returns the text the program was compiled from.
func (p *Program) Source() string { return p.source }

// Target returns the assignment target, or the empty string if the program
// is not an assignment.
func (p *Program) Target() string { return p.target }

// Tokens returns a copy of the infix tokens.
func (p *Program) Tokens() []Token { return slices.Clone(p.infix) }

// Postfix returns a copy of the postfix tokens.
func (p *Program) Postfix() []Token { return slices.Clone(p.postfix) }

// Eval evaluates the program against vars without assigning the target.
func (p *Program) Eval(vars Vars) (float64, error) {
	return EvalPostfix(p.postfix, vars)
}

// String renders the postfix form with tokens separated by spaces, prefixed
// by "name =" for an assignment.
func (p *Program) String() string {
	var b strings.Builder

	if p.target != "" {
		b.WriteString(p.target)
		b.WriteString(" =")
	}

	for _, t := range p.postfix {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(t.Text)
	}

	return b.String()
}
