// Package calc evaluates infix arithmetic and logical expressions.
//
// Evaluation is a three-stage pipeline:
//
//  1. [Tokenize] splits the source into [Token] values. Number literals are
//     kept as text; they are parsed only when evaluated.
//  2. [ToPostfix] reorders the tokens into postfix form with the
//     shunting-yard algorithm, resolving precedence, associativity, prefix
//     signs, parentheses and function calls.
//  3. [EvalPostfix] runs the postfix form on an operand stack.
//
// [Evaluator] ties the stages together and owns a variable environment that
// persists across calls:
//
//	ev := calc.New()
//	ev.Evaluate(ctx, "x = 5")  // 5, and x is now defined
//	ev.Evaluate(ctx, "x * 2")  // 10
//
// # Operators
//
// From tightest to loosest binding:
//
//	! - +           prefix (right)
//	** ^            power (right)
//	* / %
//	+ -
//	> < >= <=
//	== !=
//	&&
//	||
//
// Comparison and logical operators yield 1 for true and 0 for false; any
// non-zero operand is true.
//
// # Names
//
// An identifier resolves to an assigned variable, else to the constant pi or
// e, else to one of the unary functions sin, cos, tan, sqrt, abs, log (base
// 10), ln and exp. Variables may shadow constants.
//
// # Errors
//
// Every failure is an [*Error] whose kind is reported by [KindOf] and which
// matches its sentinel ([ErrSyntax], [ErrDivisionByZero], ...) with
// [errors.Is].
package calc
