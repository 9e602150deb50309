package repl

import (
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/calc/calc"
)

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// paramName is the name shown for the single parameter of every function.
const paramName = "x"

// functionCall represents a detected function call in the input.
type functionCall struct {
	name   string // function name
	inCall bool   // true if cursor is inside the parameter list
}

// detectFunctionCall reports the function whose parenthesized argument
// contains the cursor. A parenthesis not preceded by an identifier is a
// grouping and is skipped in favor of any enclosing call.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))
	depth := 0

	for i := cursor; i > 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')':
			depth++

		case '(':
			if depth > 0 {
				depth--

				continue
			}

			word, _, _ := wordBounds(input, i)
			if completable(word) {
				return functionCall{name: word, inCall: true}
			}
		}
	}

	return functionCall{}
}

// signature returns the call form and description of a built-in function,
// such as "sqrt(x)" and "square root". ok is false for any other name.
func signature(name string) (sig, doc string, ok bool) {
	if !calc.IsFunc(name) {
		return "", "", false
	}

	return name + "(" + paramName + ")", calc.FuncDoc(name), true
}

// renderSignatureHint renders the signature of name with its parameter
// highlighted, followed by its description. It returns "" if name is not a
// function.
func renderSignatureHint(name string) string {
	_, doc, ok := signature(name)
	if !ok {
		return ""
	}

	return signatureNameStyle.Render(name) +
		signatureStyle.Render("(") +
		currentParamStyle.Render(paramName) +
		signatureStyle.Render(")  "+doc)
}
