package calc

//go:generate go tool stringer --linecomment --type Kind,ErrorKind --output kind_string.go

import (
	"fmt"
	"strconv"
)

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	Number     Kind = iota // number
	Operator               // operator
	Identifier             // identifier
	LeftParen              // lparen
	RightParen             // rparen
)

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for c := Number; c <= RightParen; c++ {
		if c.String() == string(text) {
			*k = c

			return nil
		}
	}

	return fmt.Errorf("unknown token kind %q", text)
}

// Token is a single lexeme. Text holds the literal source text for numbers,
// identifiers and parentheses, the operator symbol for operators, and the
// internal identity (neg, pos) for unary operators emitted by [ToPostfix].
//
// Pos is the byte offset of the lexeme in the source expression.
type Token struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
	Pos  int    `json:"pos"  yaml:"pos"`
}

func (t Token) String() string {
	return t.Kind.String() + "(" + strconv.Quote(t.Text) + ")"
}

// is reports whether t has kind k and, when text is non-empty, literal text.
func (t Token) is(k Kind, text string) bool {
	return t.Kind == k && (text == "" || t.Text == text)
}
