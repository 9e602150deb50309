package calc

import (
	"unicode"
	"unicode/utf8"
)

// digraphs are the two-character operators, matched before any single
// character operator.
var digraphs = [...]string{">=", "<=", "==", "!=", "&&", "||", "**"}

// Tokenize splits text into tokens in source order.
//
// Lexing is total: a character that begins no number, identifier or known
// operator becomes a one-character [Operator] token and is rejected later
// by [ToPostfix] or [EvalPostfix]. The error result is reserved for
// [ErrLex] and is currently always nil.
func Tokenize(text string) ([]Token, error) {
	var toks []Token

	for pos := 0; pos < len(text); {
		r, size := utf8.DecodeRuneInString(text[pos:])

		switch {
		case unicode.IsSpace(r):
			pos += size

		case isDigit(r) || r == '.':
			end := scanNumber(text, pos)
			toks = append(toks, Token{Kind: Number, Text: text[pos:end], Pos: pos})
			pos = end

		case unicode.IsLetter(r):
			end := scanIdentifier(text, pos+size)
			toks = append(toks, Token{Kind: Identifier, Text: text[pos:end], Pos: pos})
			pos = end

		case r == '(':
			toks = append(toks, Token{Kind: LeftParen, Text: "(", Pos: pos})
			pos += size

		case r == ')':
			toks = append(toks, Token{Kind: RightParen, Text: ")", Pos: pos})
			pos += size

		default:
			op := text[pos : pos+size]
			for _, d := range digraphs {
				if len(text)-pos >= len(d) && text[pos:pos+len(d)] == d {
					op = d

					break
				}
			}

			toks = append(toks, Token{Kind: Operator, Text: op, Pos: pos})
			pos += len(op)
		}
	}

	return toks, nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// scanNumber returns the end offset of the run of ASCII digits starting at
// pos, allowing at most one decimal point.
func scanNumber(text string, pos int) int {
	dot := false

	for ; pos < len(text); pos++ {
		switch c := text[pos]; {
		case c >= '0' && c <= '9':
		case c == '.' && !dot:
			dot = true
		default:
			return pos
		}
	}

	return pos
}

// scanIdentifier returns the end offset of the identifier tail starting at
// pos.
func scanIdentifier(text string, pos int) int {
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		pos += size
	}

	return pos
}

// IsIdentifier reports whether s is lexed as exactly one [Identifier].
func IsIdentifier(s string) bool {
	r, size := utf8.DecodeRuneInString(s)

	return size > 0 && unicode.IsLetter(r) && scanIdentifier(s, size) == len(s)
}
