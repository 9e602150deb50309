package calc

import (
	"errors"
	"math"
	"testing"
)

func evalText(t *testing.T, in string, vars Vars) (float64, error) {
	t.Helper()

	toks, _ := Tokenize(in)

	postfix, err := ToPostfix(toks)
	if err != nil {
		t.Fatalf("ToPostfix(%q) error: %v", in, err)
	}

	return EvalPostfix(postfix, vars)
}

func TestEvalPostfix(t *testing.T) {
	vars := NewEnv(map[string]float64{"x": 3, "pi": 3})

	tests := []struct {
		in   string
		want float64
	}{
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"2 ** 3 ** 2", 512},
		{"2 ^ 10", 1024},
		{"-3 + 4", 1},
		{"-(2+3)", -5},
		{"+7", 7},
		{"- -7", 7},
		{"2 ** -1", 0.5},
		{"-2 ** 2", 4},
		{"10 - 4 - 3", 3},
		{"7 % 3", 1},
		{"-7 % 3", -1},
		{"7.5 % 2", 1.5},
		{"1 / 4", 0.25},
		{"3 > 2", 1},
		{"3 < 2", 0},
		{"2 >= 2", 1},
		{"2 <= 1", 0},
		{"1 + 1 == 2", 1},
		{"1 != 1", 0},
		{"2 && 0", 0},
		{"2 && -1", 1},
		{"0 || 0", 0},
		{"0 || 3", 1},
		{"!0", 1},
		{"!5", 0},
		{"!(1 > 2) && 3", 1},
		{"sqrt(16)", 4},
		{"abs(-5)", 5},
		{"log(1000)", 3},
		{"ln(1)", 0},
		{"exp(0)", 1},
		{"cos(0)", 1},
		{"sin(0) + tan(0)", 0},
		{"sqrt(abs(-8) * 2)", 4},
		{"x * 2", 6},
		{"pi", 3},      // variable shadows the constant
		{"e", math.E},  // constant
		{"5.", 5},      // trailing point
		{".5 + .5", 1}, // leading point
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := evalText(t, tt.in, vars)
			if err != nil {
				t.Fatalf("eval(%q) error: %v", tt.in, err)
			}

			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("eval(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEvalPostfix_NilVars(t *testing.T) {
	got, err := evalText(t, "pi * 2", nil)
	if err != nil {
		t.Fatal(err)
	}

	if got != 2*math.Pi {
		t.Errorf("got %v, want %v", got, 2*math.Pi)
	}
}

func TestEvalPostfix_Errors(t *testing.T) {
	tests := []struct {
		in   string
		want *Error
	}{
		{"5 / 0", ErrDivisionByZero},
		{"5 / (1 - 1)", ErrDivisionByZero},
		{"5 % 0", ErrModuloByZero},
		{"y + 1", ErrUnknownIdentifier},
		{"foo(2)", ErrUnknownIdentifier},
		{"2 $ 3", ErrUnknownOperator},
		{"1 + 2 = 3", ErrUnknownOperator},
		{"$", ErrUnknownOperator},
		{"1 +", ErrStackUnderflow},
		{"* 2", ErrStackUnderflow},
		{"-", ErrStackUnderflow},
		{"sqrt()", ErrStackUnderflow},
		{"", ErrMalformedExpression},
		{"()", ErrMalformedExpression},
		{"1 2", ErrMalformedExpression},
		{"2pi", ErrMalformedExpression},
		{"2x", ErrUnknownIdentifier},
		{".", ErrMalformedExpression},
		{"1.2.3", ErrMalformedExpression},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := evalText(t, tt.in, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("eval(%q) error = %v, want %v", tt.in, err, tt.want)
			}

			if k := KindOf(err); !k.IsEvaluation() {
				t.Errorf("KindOf(%v) = %v, want an evaluation kind", err, k)
			}
		})
	}
}

func TestEvalPostfix_NonFinite(t *testing.T) {
	tests := []struct {
		in    string
		check func(float64) bool
	}{
		{"sqrt(-1)", math.IsNaN},
		{"log(0)", func(v float64) bool { return math.IsInf(v, -1) }},
		{"exp(1000)", func(v float64) bool { return math.IsInf(v, 1) }},
	}

	for _, tt := range tests {
		got, err := evalText(t, tt.in, nil)
		if err != nil {
			t.Fatalf("eval(%q) error: %v", tt.in, err)
		}

		if !tt.check(got) {
			t.Errorf("eval(%q) = %v", tt.in, got)
		}
	}
}

func TestEvalPostfix_HugeLiteral(t *testing.T) {
	lit := "1"
	for range 400 {
		lit += "0"
	}

	got, err := evalText(t, lit, nil)
	if err != nil {
		t.Fatalf("eval(huge) error: %v", err)
	}

	if !math.IsInf(got, 1) {
		t.Errorf("eval(huge) = %v, want +Inf", got)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"y + 1", "unknown identifier: y"},
		{"2 $ 3", "unknown operator: $"},
		{"1 +", "missing operand: +"},
		{"5 / 0", "division by zero"},
		{"1 2", "malformed expression"},
	}

	for _, tt := range tests {
		_, err := evalText(t, tt.in, nil)
		if err == nil || err.Error() != tt.want {
			t.Errorf("eval(%q) error = %v, want %q", tt.in, err, tt.want)
		}
	}
}
