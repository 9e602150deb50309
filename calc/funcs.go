package calc

import (
	"maps"
	"math"
	"slices"
)

type function struct {
	fn  func(float64) float64
	doc string
}

var functions = map[string]function{
	"sin":  {math.Sin, "sine of x radians"},
	"cos":  {math.Cos, "cosine of x radians"},
	"tan":  {math.Tan, "tangent of x radians"},
	"sqrt": {math.Sqrt, "square root"},
	"abs":  {math.Abs, "absolute value"},
	"log":  {math.Log10, "base-10 logarithm"},
	"ln":   {math.Log, "natural logarithm"},
	"exp":  {math.Exp, "e raised to the power x"},
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// Funcs returns the sorted names of the built-in unary functions.
func Funcs() []string { return slices.Sorted(maps.Keys(functions)) }

// Constants returns the sorted names of the built-in constants.
func Constants() []string { return slices.Sorted(maps.Keys(constants)) }

// IsFunc reports whether name is a built-in function.
func IsFunc(name string) bool {
	_, ok := functions[name]

	return ok
}

// FuncDoc returns a short description of the built-in function name, or the
// empty string if there is none.
func FuncDoc(name string) string { return functions[name].doc }

// Constant returns the value of the built-in constant name.
func Constant(name string) (float64, bool) {
	v, ok := constants[name]

	return v, ok
}
