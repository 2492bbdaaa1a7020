// File: precision.go
// Title: Precision Requests and Working Arithmetic
// Description: PrecisionSpec (significant digits plus rounding mode) and the
//              small error-collecting calculator every function in this
//              package uses for its intermediate arithmetic. Division is done
//              on the integer coefficients so precision is not bounded by
//              the decimal substrate.
// Author: msto63
// Version: v0.3.1
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: RoundingMode enum for the big.Rat Decimal
// - 2026-10-19 v0.3.0: PrecisionSpec over apd, sticky-digit division
// - 2026-10-19 v0.3.1: Coefficient rounding keeps exponents in apd's range

package mathx

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/msto63/bigmath/foundation/core/errors"
)

// RoundingMode defines how results are rounded to the requested digits
type RoundingMode int

const (
	// RoundingModeHalfUp rounds 0.5 away from zero (commercial rounding)
	RoundingModeHalfUp RoundingMode = iota

	// RoundingModeHalfEven rounds 0.5 to the nearest even digit (banker's rounding)
	RoundingModeHalfEven

	// RoundingModeHalfDown rounds 0.5 toward zero
	RoundingModeHalfDown

	// RoundingModeUp rounds away from zero
	RoundingModeUp

	// RoundingModeDown truncates toward zero
	RoundingModeDown

	// RoundingModeCeiling rounds toward positive infinity
	RoundingModeCeiling

	// RoundingModeFloor rounds toward negative infinity
	RoundingModeFloor
)

var roundingNames = map[RoundingMode]string{
	RoundingModeHalfUp:   "half_up",
	RoundingModeHalfEven: "half_even",
	RoundingModeHalfDown: "half_down",
	RoundingModeUp:       "up",
	RoundingModeDown:     "down",
	RoundingModeCeiling:  "ceiling",
	RoundingModeFloor:    "floor",
}

// String returns the config name of the rounding mode
func (m RoundingMode) String() string {
	if name, ok := roundingNames[m]; ok {
		return name
	}
	return "unknown"
}

func (m RoundingMode) rounder() apd.Rounder {
	switch m {
	case RoundingModeHalfEven:
		return apd.RoundHalfEven
	case RoundingModeHalfDown:
		return apd.RoundHalfDown
	case RoundingModeUp:
		return apd.RoundUp
	case RoundingModeDown:
		return apd.RoundDown
	case RoundingModeCeiling:
		return apd.RoundCeiling
	case RoundingModeFloor:
		return apd.RoundFloor
	default:
		return apd.RoundHalfUp
	}
}

// ParseRoundingMode parses names like "half_even", "HALF-EVEN" or "floor"
func ParseRoundingMode(s string) (RoundingMode, error) {
	normalized := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "-", "_")))
	if normalized == "" {
		return RoundingModeHalfUp, nil
	}
	for mode, name := range roundingNames {
		if name == normalized {
			return mode, nil
		}
	}
	return RoundingModeHalfUp, errors.Format(errors.ModuleMathx, s, "one of half_up, half_even, half_down, up, down, ceiling, floor")
}

// MaxDigits is the largest supported precision. apd refuses exponents
// below 10^-100000 and working precision runs some digits past the
// request.
const MaxDigits = 99000

// PrecisionSpec is a request for a number of significant digits and a
// rounding rule. It is a plain value; nothing in the engine mutates it.
type PrecisionSpec struct {
	Digits   uint32
	Rounding RoundingMode
}

// NewPrecision validates digits and returns the spec
func NewPrecision(digits int, mode RoundingMode) (PrecisionSpec, error) {
	if digits < 1 || digits > MaxDigits {
		return PrecisionSpec{}, errors.InvalidPrecision("precision", digits)
	}
	return PrecisionSpec{Digits: uint32(digits), Rounding: mode}, nil
}

// MustPrecision is NewPrecision for constants; it panics on invalid digits
func MustPrecision(digits int, mode RoundingMode) PrecisionSpec {
	p, err := NewPrecision(digits, mode)
	if err != nil {
		panic(err)
	}
	return p
}

// Digits returns a half-up spec with n significant digits
func Digits(n uint32) PrecisionSpec {
	return PrecisionSpec{Digits: n, Rounding: RoundingModeHalfUp}
}

// Validate reports an InvalidPrecision error for op when Digits is
// outside [1, MaxDigits]
func (p PrecisionSpec) Validate(op string) error {
	if p.Digits < 1 || p.Digits > MaxDigits {
		return errors.InvalidPrecision(op, p.Digits)
	}
	return nil
}

// Plus returns the spec widened by k guard digits
func (p PrecisionSpec) Plus(k uint32) PrecisionSpec {
	p.Digits += k
	return p
}

// WithDigits returns the spec with a different digit count
func (p PrecisionSpec) WithDigits(n uint32) PrecisionSpec {
	p.Digits = n
	return p
}

// Context returns an apd context rounding to this spec
func (p PrecisionSpec) Context() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(p.Digits)
	ctx.Rounding = p.Rounding.rounder()
	return ctx
}

// calc performs rounded arithmetic at one precision and keeps the first
// error. Once err is set every operation is a no-op returning zero, so a
// formula can be written straight through and checked once at the end.
type calc struct {
	ctx *apd.Context
	op  string
	err error
}

func newCalc(op string, p PrecisionSpec) *calc {
	return &calc{ctx: p.Context(), op: op}
}

func (c *calc) digits() uint32 {
	return c.ctx.Precision
}

func (c *calc) fail(err error) *apd.Decimal {
	if c.err == nil && err != nil {
		c.err = err
	}
	return new(apd.Decimal)
}

func (c *calc) check(_ apd.Condition, err error) {
	if err != nil && c.err == nil {
		c.err = errors.Overflow(c.op, err.Error())
	}
}

func (c *calc) add(x, y *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	if c.err == nil {
		c.check(c.ctx.Add(d, x, y))
	}
	return d
}

func (c *calc) sub(x, y *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	if c.err == nil {
		c.check(c.ctx.Sub(d, x, y))
	}
	return d
}

func (c *calc) mul(x, y *apd.Decimal) *apd.Decimal {
	if c.err != nil {
		return new(apd.Decimal)
	}
	if int64(x.Exponent)+int64(y.Exponent) < apd.MinExponent {
		d, err := mulDecimal(c.ctx, x, y)
		if err != nil {
			return c.fail(errors.Overflow(c.op, err.Error()))
		}
		return d
	}
	d := new(apd.Decimal)
	c.check(c.ctx.Mul(d, x, y))
	return d
}

func (c *calc) mulInt(x *apd.Decimal, n int64) *apd.Decimal {
	return c.mul(x, apd.New(n, 0))
}

func (c *calc) quo(x, y *apd.Decimal) *apd.Decimal {
	if c.err != nil {
		return new(apd.Decimal)
	}
	d, err := quoDecimal(c.ctx, x, y)
	if err != nil {
		return c.fail(err)
	}
	return d
}

func (c *calc) quoInt(x *apd.Decimal, n int64) *apd.Decimal {
	return c.quo(x, apd.New(n, 0))
}

// exactAdd, exactSub and exactMul skip rounding but keep the first error
func (c *calc) exactAdd(x, y *apd.Decimal) *apd.Decimal {
	return c.exact(exactAdd, x, y)
}

func (c *calc) exactSub(x, y *apd.Decimal) *apd.Decimal {
	return c.exact(exactSub, x, y)
}

func (c *calc) exactMul(x, y *apd.Decimal) *apd.Decimal {
	return c.exact(exactMul, x, y)
}

func (c *calc) exact(fn func(x, y *apd.Decimal) (*apd.Decimal, error), x, y *apd.Decimal) *apd.Decimal {
	if c.err != nil {
		return new(apd.Decimal)
	}
	d, err := fn(x, y)
	if err != nil {
		return c.fail(errors.Overflow(c.op, err.Error()))
	}
	return d
}

func (c *calc) round(x *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	if c.err == nil {
		c.check(c.ctx.Round(d, x))
	}
	return d
}

// powInt raises x to a non-negative integer power by squaring
func (c *calc) powInt(x *apd.Decimal, n int64) *apd.Decimal {
	result := apd.New(1, 0)
	base := new(apd.Decimal).Set(x)
	for n > 0 && c.err == nil {
		if n&1 == 1 {
			result = c.mul(result, base)
		}
		n >>= 1
		if n > 0 {
			base = c.mul(base, base)
		}
	}
	return result
}

// quoDecimal divides x by y, correctly rounded to ctx.Precision digits.
// The quotient is formed on the integer coefficients with at least one
// digit beyond the precision; a non-zero remainder is folded into a
// trailing sticky digit so that half-way cases round correctly.
func quoDecimal(ctx *apd.Context, x, y *apd.Decimal) (*apd.Decimal, error) {
	if y.IsZero() {
		return nil, errors.DivisionByZero(errors.ModuleMathx, "quo")
	}
	if x.IsZero() {
		return new(apd.Decimal), nil
	}

	prec := int64(ctx.Precision)
	shift := prec + y.NumDigits() - x.NumDigits() + 2
	if shift < 0 {
		shift = 0
	}

	num := x.Coeff.MathBigInt()
	num.Mul(num, pow10Big(shift))
	den := y.Coeff.MathBigInt()

	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	exp := int64(x.Exponent) - int64(y.Exponent) - shift
	if r.Sign() != 0 {
		q.Mul(q, bigTen)
		q.Add(q, bigOne)
		exp--
	}
	return fitDecimal(ctx, q, exp, x.Negative != y.Negative, "quo")
}

// mulDecimal multiplies on the integer coefficients. calc.mul uses it when
// the exact product would carry an exponent apd refuses.
func mulDecimal(ctx *apd.Context, x, y *apd.Decimal) (*apd.Decimal, error) {
	coeff := x.Coeff.MathBigInt()
	coeff.Mul(coeff, y.Coeff.MathBigInt())
	return fitDecimal(ctx, coeff, int64(x.Exponent)+int64(y.Exponent), x.Negative != y.Negative, "mul")
}

// fitDecimal rounds coeff·10^exp to ctx.Precision digits with the
// context's rounding mode. apd rejects raw exponents below
// apd.MinExponent in every operation, so digits under 10^MinExponent are
// rounded away and a value entirely below it becomes zero.
func fitDecimal(ctx *apd.Context, coeff *big.Int, exp int64, neg bool, op string) (*apd.Decimal, error) {
	if coeff.Sign() == 0 {
		return new(apd.Decimal), nil
	}
	nd := bigDigits(coeff)
	keep := nd
	if prec := int64(ctx.Precision); prec > 0 && keep > prec {
		keep = prec
	}
	if exp+nd-keep < apd.MinExponent {
		keep = nd - (apd.MinExponent - exp)
	}
	if keep <= 0 {
		return new(apd.Decimal), nil
	}

	q := coeff
	if drop := nd - keep; drop > 0 {
		unit := pow10Big(drop)
		r := new(big.Int)
		q, r = new(big.Int).QuoRem(coeff, unit, r)
		if r.Sign() != 0 {
			half := new(big.Int).Lsh(r, 1).Cmp(unit)
			if ctx.Rounding.ShouldAddOne(new(apd.BigInt).SetMathBigInt(q), neg, half) {
				q.Add(q, bigOne)
				if bigDigits(q) > keep {
					q.Quo(q, bigTen)
					drop++
				}
			}
		}
		exp += drop
	}

	if exp+keep-1 > apd.MaxExponent {
		return nil, errors.Overflow(op, "result exceeds the decimal exponent range")
	}
	d := apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(q), int32(exp))
	d.Negative = neg
	return d, nil
}

func bigDigits(x *big.Int) int64 {
	return apd.NumDigits(new(apd.BigInt).SetMathBigInt(x))
}

var (
	bigOne = big.NewInt(1)
	bigTen = big.NewInt(10)
)

func pow10Big(n int64) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(n), nil)
}

// acceptableError returns 10^-(digits+1)
func acceptableError(digits uint32) *apd.Decimal {
	return apd.New(1, -int32(digits)-1)
}
