package calc

import (
	"log/slog"

	"github.com/edwingeng/deque"
)

// ToPostfix rewrites an infix token sequence into postfix order using the
// shunting-yard algorithm.
//
// An identifier immediately followed by "(" is a function name: it waits on
// the operator stack and is emitted after the matching ")". A "-" or "+" at
// the start of input, or after another operator or "(", is the prefix sign
// and is emitted with the identity "neg" or "pos". "!" is always prefix.
//
// The only failure is [ErrSyntax] for unbalanced parentheses.
func ToPostfix(tokens []Token) ([]Token, error) {
	out := make([]Token, 0, len(tokens))
	ops := deque.NewDeque()

	for i, tok := range tokens {
		switch tok.Kind {
		case Number:
			out = append(out, tok)

		case Identifier:
			if i+1 < len(tokens) && tokens[i+1].Kind == LeftParen {
				ops.PushBack(tok)
			} else {
				out = append(out, tok)
			}

		case Operator:
			tok = classify(tokens, i)
			in := specOf(tok.Text)

			for !ops.Empty() {
				top := ops.Back().(Token)
				if top.Kind != Operator {
					break
				}

				ts := specOf(top.Text)
				if ts.Precedence < in.Precedence ||
					(ts.Precedence == in.Precedence && in.Assoc == AssocRight) {
					break
				}

				out = append(out, ops.PopBack().(Token))
			}

			ops.PushBack(tok)

		case LeftParen:
			ops.PushBack(tok)

		case RightParen:
			open := false

			for !ops.Empty() {
				top := ops.PopBack().(Token)
				if top.Kind == LeftParen {
					open = true

					break
				}

				out = append(out, top)
			}

			if !open {
				return nil, ErrSyntax.With(
					slog.String("paren", tok.Text),
					slog.Int(attrPos, tok.Pos),
				)
			}

			if !ops.Empty() && ops.Back().(Token).Kind == Identifier {
				out = append(out, ops.PopBack().(Token))
			}
		}
	}

	for !ops.Empty() {
		top := ops.PopBack().(Token)
		if top.Kind == LeftParen {
			return nil, ErrSyntax.With(
				slog.String("paren", top.Text),
				slog.Int(attrPos, top.Pos),
			)
		}

		out = append(out, top)
	}

	return out, nil
}

// classify returns the operator at tokens[i], renamed to its unary identity
// when it is used in prefix position.
func classify(tokens []Token, i int) Token {
	tok := tokens[i]

	if tok.Text == opNot {
		return tok
	}

	prefix := i == 0 ||
		tokens[i-1].Kind == Operator ||
		tokens[i-1].Kind == LeftParen
	if !prefix {
		return tok
	}

	if id, ok := unaryForm(tok.Text); ok {
		tok.Text = id
	}

	return tok
}
