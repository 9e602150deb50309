package calc_test

import (
	"math"
	"testing"

	"github.com/expr-lang/expr"

	"github.com/ardnew/calc/calc"
)

// TestEvaluate_AgreesWithExpr cross-checks the evaluator against the
// expr-lang engine on the subset of syntax where both grammars assign the
// same meaning. expr-lang yields bools for comparisons, which are mapped to
// 1 and 0.
func TestEvaluate_AgreesWithExpr(t *testing.T) {
	exprs := []string{
		"2 + 3 * 4",
		"(2 + 3) * 4",
		"7 - 2 - 1",
		"100 / 8 / 2",
		"10 / 4",
		"1.5 * 4 - 0.25",
		"-3 + 4",
		"-(2 + 3)",
		"2 * (3 + 4) * 5",
		"17 % 5",
		"2 ** 10",
		"1 + 2 < 4",
		"3 >= 3",
		"2 == 2.0",
		"1 != 1",
		"1 < 2 && 3 > 2",
		"1 > 2 || 2 > 1",
		"1 > 2 || 2 > 3 && 1 == 1",
		"(1 + 2) * 3 == 9",
	}

	ev := calc.New()

	for _, in := range exprs {
		t.Run(in, func(t *testing.T) {
			out, err := expr.Eval(in, nil)
			if err != nil {
				t.Fatalf("expr.Eval(%q) error: %v", in, err)
			}

			var want float64

			switch v := out.(type) {
			case int:
				want = float64(v)
			case float64:
				want = v
			case bool:
				if v {
					want = 1
				}
			default:
				t.Fatalf("expr.Eval(%q) = %T", in, out)
			}

			got, err := ev.Evaluate(t.Context(), in)
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", in, err)
			}

			if math.Abs(got-want) > 1e-12 {
				t.Errorf("Evaluate(%q) = %v, expr-lang = %v", in, got, want)
			}
		})
	}
}
