package calc

import (
	"errors"
	"log/slog"
	"strings"
)

// ErrorKind classifies an [Error].
type ErrorKind int

const (
	KindNone                ErrorKind = iota // none
	KindLex                                  // LexError
	KindSyntax                               // SyntaxError
	KindDivisionByZero                       // DivisionByZero
	KindModuloByZero                         // ModuloByZero
	KindUnknownIdentifier                    // UnknownIdentifier
	KindUnknownOperator                      // UnknownOperator
	KindStackUnderflow                       // StackUnderflow
	KindMalformedExpression                  // MalformedExpression
	KindInvalidVars                          // InvalidVars
)

// IsEvaluation reports whether k is raised while evaluating a postfix
// sequence, as opposed to while lexing or converting it.
func (k ErrorKind) IsEvaluation() bool {
	return k >= KindDivisionByZero && k <= KindMalformedExpression
}

// Predefined errors (sentinel values).
var (
	ErrLex                 = newKindError(KindLex, "invalid input")
	ErrSyntax              = newKindError(KindSyntax, "unbalanced parentheses")
	ErrDivisionByZero      = newKindError(KindDivisionByZero, "division by zero")
	ErrModuloByZero        = newKindError(KindModuloByZero, "modulo by zero")
	ErrUnknownIdentifier   = newKindError(KindUnknownIdentifier, "unknown identifier")
	ErrUnknownOperator     = newKindError(KindUnknownOperator, "unknown operator")
	ErrStackUnderflow      = newKindError(KindStackUnderflow, "missing operand")
	ErrMalformedExpression = newKindError(KindMalformedExpression, "malformed expression")
	ErrInvalidVars         = newKindError(KindInvalidVars, "invalid variables")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Errors derived from a sentinel with [Error.Wrap] or [Error.With] still
// match that sentinel with [errors.Is].
type Error struct {
	kind  ErrorKind
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

func newKindError(kind ErrorKind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// KindOf returns the kind of the first [Error] in err's chain, or [KindNone].
func KindOf(err error) ErrorKind {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if ee, ok := e.(*Error); ok && ee.kind != KindNone {
			return ee.kind
		}
	}

	return KindNone
}

// Kind returns the error classification.
func (e *Error) Kind() ErrorKind { return e.kind }

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 3)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	for _, a := range e.attrs {
		if a.Key == attrName {
			part = append(part, strings.TrimSpace(a.Value.String()))

			break
		}
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Is reports whether target is an [Error] of the same non-zero kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && e.kind != KindNone && t.kind == e.kind
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.kind != KindNone {
		attrs = append(attrs, slog.String("kind", e.kind.String()))
	}

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// Attribute keys shared by errors raised in this package. The value under
// attrName is also folded into the error message.
const (
	attrName = "name"
	attrPos  = "pos"
	attrExpr = "expr"
)

func withToken(e *Error, t Token) *Error {
	return e.With(slog.String(attrName, t.Text), slog.Int(attrPos, t.Pos))
}
