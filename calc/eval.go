package calc

import (
	"errors"
	"log/slog"
	"math"
	"strconv"
)

// EvalPostfix evaluates a postfix token sequence with an operand stack.
//
// Identifiers resolve first against vars (which may be nil), then against
// the built-in constants, and otherwise name a unary function applied to
// the top of the stack. Comparison and logical operators yield 1 or 0, and
// any non-zero operand is true.
//
// Exactly one value must remain on the stack; any other count is
// [ErrMalformedExpression].
func EvalPostfix(postfix []Token, vars Vars) (float64, error) {
	stack := make([]float64, 0, len(postfix))

	pop := func() float64 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		return v
	}

	for _, tok := range postfix {
		switch tok.Kind {
		case Number:
			v, err := parseNumber(tok)
			if err != nil {
				return 0, err
			}

			stack = append(stack, v)

		case Identifier:
			if vars != nil {
				if v, ok := vars.Lookup(tok.Text); ok {
					stack = append(stack, v)

					continue
				}
			}

			if v, ok := constants[tok.Text]; ok {
				stack = append(stack, v)

				continue
			}

			fn, ok := functions[tok.Text]
			if !ok {
				return 0, withToken(ErrUnknownIdentifier, tok)
			}

			if len(stack) < 1 {
				return 0, withToken(ErrStackUnderflow, tok)
			}

			stack = append(stack, fn.fn(pop()))

		case Operator:
			spec, ok := LookupOperator(tok.Text)
			if !ok {
				return 0, withToken(ErrUnknownOperator, tok)
			}

			if len(stack) < int(spec.Arity) {
				return 0, withToken(ErrStackUnderflow, tok)
			}

			if spec.Arity == Unary {
				stack = append(stack, applyUnary(spec.Symbol, pop()))

				continue
			}

			b := pop()
			a := pop()

			v, err := applyBinary(a, spec.Symbol, b)
			if err != nil {
				return 0, err.With(slog.Int(attrPos, tok.Pos))
			}

			stack = append(stack, v)

		default:
			// Parentheses never survive conversion.
			return 0, ErrMalformedExpression.With(
				slog.String("token", tok.String()),
				slog.Int(attrPos, tok.Pos),
			)
		}
	}

	if len(stack) != 1 {
		return 0, ErrMalformedExpression.With(slog.Int("operands", len(stack)))
	}

	return stack[0], nil
}

// parseNumber parses a number literal. Literals too large for float64
// evaluate to ±Inf rather than failing.
func parseNumber(tok Token) (float64, error) {
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, ErrMalformedExpression.
			With(slog.String("number", tok.Text), slog.Int(attrPos, tok.Pos)).
			Wrap(err)
	}

	return v, nil
}

func applyUnary(op string, x float64) float64 {
	switch op {
	case opNeg:
		return -x
	case opNot:
		return truth(x == 0)
	default: // opPos
		return x
	}
}

func applyBinary(a float64, op string, b float64) (float64, *Error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, ErrDivisionByZero
		}

		return a / b, nil
	case "%":
		if b == 0 {
			return 0, ErrModuloByZero
		}

		return math.Mod(a, b), nil
	case "**", "^":
		return math.Pow(a, b), nil
	case ">":
		return truth(a > b), nil
	case "<":
		return truth(a < b), nil
	case ">=":
		return truth(a >= b), nil
	case "<=":
		return truth(a <= b), nil
	case "==":
		return truth(a == b), nil
	case "!=":
		return truth(a != b), nil
	case "&&":
		return truth(a != 0 && b != 0), nil
	case "||":
		return truth(a != 0 || b != 0), nil
	}

	return 0, ErrUnknownOperator.With(slog.String(attrName, op))
}

func truth(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
