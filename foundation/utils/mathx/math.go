// File: math.go
// Title: Package Functions and Math Facade
// Description: Package-level functions bound to DefaultContext, the Math
//              facade bound to a context and a precision, and a name based
//              function registry used by command line tools.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Documented the Math facade methods

package mathx

import (
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/msto63/bigmath/foundation/core/errors"
)

// UnaryFunc is the shape of single-argument engine functions
type UnaryFunc func(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error)

// BinaryFunc is the shape of two-argument engine functions
type BinaryFunc func(x, y *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error)

// Function is a named engine function with one or two arguments
type Function struct {
	Name   string
	Arity  int
	Unary  UnaryFunc
	Binary BinaryFunc
}

// Call applies the function to args
func (f Function) Call(p PrecisionSpec, args ...*apd.Decimal) (*apd.Decimal, error) {
	if len(args) != f.Arity {
		return nil, errors.InvalidInput(errors.ModuleMathx, f.Name, len(args), "argument count "+strconv.Itoa(f.Arity))
	}
	if f.Arity == 1 {
		return f.Unary(args[0], p)
	}
	return f.Binary(args[0], args[1], p)
}

// Functions returns the registry of the context keyed by lower-case name
func (e *EngineContext) Functions() map[string]Function {
	unary := map[string]UnaryFunc{
		"exp": e.Exp, "log": e.Log, "ln": e.Log, "log2": e.Log2, "log10": e.Log10,
		"sin": e.Sin, "cos": e.Cos, "tan": e.Tan, "cot": e.Cot,
		"asin": e.Asin, "acos": e.Acos, "atan": e.Atan, "acot": e.Acot,
		"sinh": e.Sinh, "cosh": e.Cosh, "tanh": e.Tanh, "coth": e.Coth,
		"asinh": e.Asinh, "acosh": e.Acosh, "atanh": e.Atanh, "acoth": e.Acoth,
		"sqrt": e.Sqrt, "gamma": e.Gamma, "factorial": e.FactorialDecimal,
		"reciprocal": e.Reciprocal,
	}
	binary := map[string]BinaryFunc{
		"pow": e.Pow, "root": e.Root, "atan2": e.Atan2, "logbase": e.LogBase,
	}

	registry := make(map[string]Function, len(unary)+len(binary))
	for name, fn := range unary {
		registry[name] = Function{Name: name, Arity: 1, Unary: fn}
	}
	for name, fn := range binary {
		registry[name] = Function{Name: name, Arity: 2, Binary: fn}
	}
	return registry
}

// Lookup returns the function with the given name
func (e *EngineContext) Lookup(name string) (Function, bool) {
	f, ok := e.Functions()[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// FunctionNames returns the registered names in sorted order
func (e *EngineContext) FunctionNames() []string {
	registry := e.Functions()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Math binds a context and a precision so callers can omit both
type Math struct {
	ctx *EngineContext
	p   PrecisionSpec
}

// NewMath returns a facade over ctx; a nil ctx uses DefaultContext
func NewMath(ctx *EngineContext, p PrecisionSpec) *Math {
	if ctx == nil {
		ctx = DefaultContext()
	}
	return &Math{ctx: ctx, p: p}
}

// Precision returns the bound precision
func (m *Math) Precision() PrecisionSpec { return m.p }

// Context returns the bound engine context
func (m *Math) Context() *EngineContext { return m.ctx }

// WithPrecision returns a facade over the same context with another precision
func (m *Math) WithPrecision(p PrecisionSpec) *Math {
	return &Math{ctx: m.ctx, p: p}
}

// Exp returns e^x at the facade precision
func (m *Math) Exp(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Exp(x, m.p) }

// Log returns the natural logarithm of x
func (m *Math) Log(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Log(x, m.p) }

// Log2 returns the base 2 logarithm of x
func (m *Math) Log2(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Log2(x, m.p) }

// Log10 returns the base 10 logarithm of x
func (m *Math) Log10(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Log10(x, m.p) }

// Sin returns the sine of x in radians
func (m *Math) Sin(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Sin(x, m.p) }

// Cos returns the cosine of x in radians
func (m *Math) Cos(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Cos(x, m.p) }

// Tan returns the tangent of x in radians
func (m *Math) Tan(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Tan(x, m.p) }

// Cot returns the cotangent of x in radians
func (m *Math) Cot(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Cot(x, m.p) }

// Asin returns the arc sine of x in [-π/2, π/2]
func (m *Math) Asin(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Asin(x, m.p) }

// Acos returns the arc cosine of x in [0, π]
func (m *Math) Acos(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Acos(x, m.p) }

// Atan returns the arc tangent of x in (-π/2, π/2)
func (m *Math) Atan(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Atan(x, m.p) }

// Acot returns the arc cotangent of x in (0, π)
func (m *Math) Acot(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Acot(x, m.p) }

// Sinh returns the hyperbolic sine of x
func (m *Math) Sinh(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Sinh(x, m.p) }

// Cosh returns the hyperbolic cosine of x
func (m *Math) Cosh(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Cosh(x, m.p) }

// Tanh returns the hyperbolic tangent of x
func (m *Math) Tanh(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Tanh(x, m.p) }

// Coth returns the hyperbolic cotangent of x
func (m *Math) Coth(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Coth(x, m.p) }

// Asinh returns the inverse hyperbolic sine of x
func (m *Math) Asinh(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Asinh(x, m.p) }

// Acosh returns the inverse hyperbolic cosine of x >= 1
func (m *Math) Acosh(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Acosh(x, m.p) }

// Atanh returns the inverse hyperbolic tangent of x in (-1, 1)
func (m *Math) Atanh(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Atanh(x, m.p) }

// Acoth returns the inverse hyperbolic cotangent of |x| > 1
func (m *Math) Acoth(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Acoth(x, m.p) }

// Sqrt returns the square root of x >= 0
func (m *Math) Sqrt(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Sqrt(x, m.p) }

// Gamma returns Γ(x)
func (m *Math) Gamma(x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Gamma(x, m.p) }

// Pi returns π
func (m *Math) Pi() (*apd.Decimal, error) { return m.ctx.Pi(m.p) }

// E returns Euler's number
func (m *Math) E() (*apd.Decimal, error) { return m.ctx.E(m.p) }

// Pow returns x^y
func (m *Math) Pow(x, y *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Pow(x, y, m.p) }

// Root returns the n-th root of x
func (m *Math) Root(x, n *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Root(x, n, m.p) }

// Atan2 returns the angle of the point (x, y) in (-π, π]
func (m *Math) Atan2(y, x *apd.Decimal) (*apd.Decimal, error) { return m.ctx.Atan2(y, x, m.p) }

// Exp returns e^x on the default context
func Exp(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) { return DefaultContext().Exp(x, p) }

// Log returns the natural logarithm on the default context
func Log(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) { return DefaultContext().Log(x, p) }

// Log10 returns the base 10 logarithm on the default context
func Log10(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return DefaultContext().Log10(x, p)
}

// Sin returns the sine on the default context
func Sin(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) { return DefaultContext().Sin(x, p) }

// Cos returns the cosine on the default context
func Cos(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) { return DefaultContext().Cos(x, p) }

// Tan returns the tangent on the default context
func Tan(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) { return DefaultContext().Tan(x, p) }

// Asin returns the arc sine on the default context
func Asin(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) { return DefaultContext().Asin(x, p) }

// Acos returns the arc cosine on the default context
func Acos(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) { return DefaultContext().Acos(x, p) }

// Atan returns the arc tangent on the default context
func Atan(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) { return DefaultContext().Atan(x, p) }

// Sinh returns the hyperbolic sine on the default context
func Sinh(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) { return DefaultContext().Sinh(x, p) }

// Cosh returns the hyperbolic cosine on the default context
func Cosh(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) { return DefaultContext().Cosh(x, p) }

// Tanh returns the hyperbolic tangent on the default context
func Tanh(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) { return DefaultContext().Tanh(x, p) }

// Sqrt returns the square root on the default context
func Sqrt(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) { return DefaultContext().Sqrt(x, p) }

// Root returns the n-th root on the default context
func Root(x, n *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return DefaultContext().Root(x, n, p)
}

// Pow returns x^y on the default context
func Pow(x, y *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return DefaultContext().Pow(x, y, p)
}

// Pi returns π on the default context
func Pi(p PrecisionSpec) (*apd.Decimal, error) { return DefaultContext().Pi(p) }

// E returns Euler's number on the default context
func E(p PrecisionSpec) (*apd.Decimal, error) { return DefaultContext().E(p) }

// Gamma returns Γ(x) on the default context
func Gamma(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return DefaultContext().Gamma(x, p)
}

// Factorial returns n! on the default context
func Factorial(n int) (*big.Int, error) { return DefaultContext().Factorial(n) }

// Bernoulli returns the n-th Bernoulli number on the default context
func Bernoulli(n int) (*Rational, error) { return DefaultContext().Bernoulli(n) }
