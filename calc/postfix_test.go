package calc

import (
	"errors"
	"strings"
	"testing"
)

// postfixOf converts in and joins the postfix token texts with spaces.
func postfixOf(t *testing.T, in string) (string, error) {
	t.Helper()

	toks, err := Tokenize(in)
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", in, err)
	}

	out, err := ToPostfix(toks)
	if err != nil {
		return "", err
	}

	texts := make([]string, len(out))
	for i, tok := range out {
		texts[i] = tok.Text
	}

	return strings.Join(texts, " "), nil
}

func TestToPostfix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"1", "1"},
		{"2 + 3 * 4", "2 3 4 * +"},
		{"(2 + 3) * 4", "2 3 + 4 *"},
		{"7 - 2 - 1", "7 2 - 1 -"},
		{"8 / 4 / 2", "8 4 / 2 /"},
		{"2 ** 3 ** 2", "2 3 2 ** **"},
		{"2 ^ 3 ** 2", "2 3 2 ** ^"},
		{"-3 + 4", "3 neg 4 +"},
		{"+3", "3 pos"},
		{"-(2+3)", "2 3 + neg"},
		{"--3", "3 neg neg"},
		{"2 * -3", "2 3 neg *"},
		{"2 ** -1", "2 1 neg **"},
		{"-2 ** 2", "2 neg 2 **"},
		{"!0 && 1", "0 ! 1 &&"},
		{"!!x", "x ! !"},
		{"1 < 2 == 1", "1 2 < 1 =="},
		{"a || b && c", "a b c && ||"},
		{"1 + 2 > 2 * 1", "1 2 + 2 1 * >"},
		{"7 % 3 * 2", "7 3 % 2 *"},
		{"sqrt(16)", "16 sqrt"},
		{"-sqrt(16)", "16 sqrt neg"},
		{"abs(-5)", "5 neg abs"},
		{"sqrt(abs(x) + 1)", "x abs 1 + sqrt"},
		{"sin(pi / 2) * 2", "pi 2 / sin 2 *"},
		{"x", "x"},
		{"2 $ 3", "2 3 $"},
		{"1 + 2 = 3", "1 2 + 3 ="},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := postfixOf(t, tt.in)
			if err != nil {
				t.Fatalf("ToPostfix(%q) error: %v", tt.in, err)
			}

			if got != tt.want {
				t.Errorf("ToPostfix(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToPostfix_Unbalanced(t *testing.T) {
	for _, in := range []string{
		"(2 + 3",
		"2 + 3)",
		")",
		"(",
		"((1)",
		"(1))",
		"sqrt(4",
		") + (",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := postfixOf(t, in)
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("ToPostfix(%q) error = %v, want %v", in, err, ErrSyntax)
			}

			if KindOf(err) != KindSyntax {
				t.Errorf("KindOf = %v, want %v", KindOf(err), KindSyntax)
			}
		})
	}
}

func TestToPostfix_UnaryKeepsPosition(t *testing.T) {
	toks, _ := Tokenize("1 - -2")

	out, err := ToPostfix(toks)
	if err != nil {
		t.Fatal(err)
	}

	// 1 2 neg -
	if out[2].Text != opNeg || out[2].Pos != 4 {
		t.Errorf("unary token = %+v, want neg at 4", out[2])
	}

	if out[3].Text != "-" || out[3].Pos != 2 {
		t.Errorf("binary token = %+v, want - at 2", out[3])
	}

	if toks[2].Text != "-" {
		t.Errorf("ToPostfix modified its input: %v", toks)
	}
}
