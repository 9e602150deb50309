package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/calc/calc"
)

func TestTokensText(t *testing.T) {
	var buf bytes.Buffer

	tok := &Tokens{FmtFlags{Output: OutputText, Expr: "x*(2+1)"}}
	if err := tok.write(t.Context(), &buf); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}

	if fields := strings.Fields(lines[1]); len(fields) != 3 ||
		fields[0] != "1" || fields[1] != "operator" || fields[2] != "*" {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestTokensJSON(t *testing.T) {
	var buf bytes.Buffer

	tok := &Tokens{FmtFlags{Output: OutputJSON, Indent: 2, Expr: "a >= 1.5"}}
	if err := tok.write(t.Context(), &buf); err != nil {
		t.Fatal(err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if len(got) != 3 || got[1]["kind"] != "operator" || got[1]["text"] != ">=" || got[2]["pos"] != 5.0 {
		t.Errorf("tokens = %v", got)
	}

	if !strings.Contains(buf.String(), "\n  {") {
		t.Errorf("JSON not indented:\n%s", buf.String())
	}
}

func TestTokensEmpty(t *testing.T) {
	var buf bytes.Buffer

	tok := &Tokens{FmtFlags{Output: OutputJSON, Expr: "   "}}
	if err := tok.write(t.Context(), &buf); err != nil {
		t.Fatal(err)
	}

	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty expression tokens = %q, want []", buf.String())
	}
}

func TestTokensUnknownOperator(t *testing.T) {
	var buf bytes.Buffer

	// Unknown operators are tokens; they fail only when compiled.
	tok := &Tokens{FmtFlags{Output: OutputText, Expr: "1 $ 2"}}
	if err := tok.write(t.Context(), &buf); err != nil {
		t.Fatalf("write() error = %v", err)
	}

	if !strings.Contains(buf.String(), "operator  $") {
		t.Errorf("tokens = %q", buf.String())
	}
}

func TestPostfixText(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 + 2 * 3", "1 2 3 * +"},
		{"(1 + 2) * 3", "1 2 + 3 *"},
		{"2 ** 3 ** 2", "2 3 2 ** **"},
		{"-x", "x neg"},
		{"y = sqrt(4)", "y = 4 sqrt"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			var buf bytes.Buffer

			p := &Postfix{FmtFlags{Output: OutputText, Expr: tt.expr}}
			if err := p.write(t.Context(), &buf); err != nil {
				t.Fatal(err)
			}

			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Errorf("postfix = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPostfixYAML(t *testing.T) {
	var buf bytes.Buffer

	p := &Postfix{FmtFlags{Output: OutputYAML, Indent: 2, Expr: "z = 1 - 2"}}
	if err := p.write(t.Context(), &buf); err != nil {
		t.Fatal(err)
	}

	var doc postfixDoc
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}

	if doc.Target != "z" || doc.Expr != "z = 1 - 2" || len(doc.Postfix) != 3 || doc.Postfix[2].Text != "-" {
		t.Errorf("doc = %+v", doc)
	}
}

func TestPostfixInvalid(t *testing.T) {
	p := &Postfix{FmtFlags{Output: OutputText, Expr: "(1 + 2"}}

	err := p.write(t.Context(), &bytes.Buffer{})
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, calc.ErrSyntax) {
		t.Errorf("write() error = %v, want a syntax error", err)
	}
}
