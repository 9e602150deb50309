package calc

// Assoc is the associativity of a binary operator.
type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
)

// Arity is the number of operands an operator consumes.
type Arity int

const (
	Unary  Arity = 1
	Binary Arity = 2
)

// OperatorSpec describes how an operator binds during conversion and how
// many operands it takes during evaluation.
type OperatorSpec struct {
	Symbol     string
	Precedence int
	Assoc      Assoc
	Arity      Arity
}

// Internal identities of the unary sign operators. They never appear in
// source text, so they cannot collide with a lexed operator.
const (
	opNeg = "neg"
	opPos = "pos"
	opNot = "!"
)

const (
	precUnknown = iota
	precOr
	precAnd
	precEquality
	precCompare
	precAdditive
	precMultiplicative
	precPower
	precUnary
)

var operators = map[string]OperatorSpec{
	opNeg: {opNeg, precUnary, AssocRight, Unary},
	opPos: {opPos, precUnary, AssocRight, Unary},
	opNot: {opNot, precUnary, AssocRight, Unary},

	"**": {"**", precPower, AssocRight, Binary},
	"^":  {"^", precPower, AssocRight, Binary},

	"*": {"*", precMultiplicative, AssocLeft, Binary},
	"/": {"/", precMultiplicative, AssocLeft, Binary},
	"%": {"%", precMultiplicative, AssocLeft, Binary},

	"+": {"+", precAdditive, AssocLeft, Binary},
	"-": {"-", precAdditive, AssocLeft, Binary},

	">":  {">", precCompare, AssocLeft, Binary},
	"<":  {"<", precCompare, AssocLeft, Binary},
	">=": {">=", precCompare, AssocLeft, Binary},
	"<=": {"<=", precCompare, AssocLeft, Binary},

	"==": {"==", precEquality, AssocLeft, Binary},
	"!=": {"!=", precEquality, AssocLeft, Binary},

	"&&": {"&&", precAnd, AssocLeft, Binary},
	"||": {"||", precOr, AssocLeft, Binary},
}

// LookupOperator returns the spec registered for symbol. Unary operators are
// registered under their internal identity ("neg", "pos", "!").
func LookupOperator(symbol string) (OperatorSpec, bool) {
	spec, ok := operators[symbol]

	return spec, ok
}

// specOf returns the conversion spec for symbol. Unregistered symbols bind
// loosest so that they still convert, and are rejected by the evaluator.
func specOf(symbol string) OperatorSpec {
	if spec, ok := operators[symbol]; ok {
		return spec
	}

	return OperatorSpec{Symbol: symbol, Precedence: precUnknown, Assoc: AssocLeft, Arity: Binary}
}

// unaryForm returns the internal identity of a prefix use of symbol, if it
// has one.
func unaryForm(symbol string) (string, bool) {
	switch symbol {
	case "-":
		return opNeg, true
	case "+":
		return opPos, true
	case opNot:
		return opNot, true
	}

	return "", false
}
