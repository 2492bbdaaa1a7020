// File: decimal.go
// Title: Decimal Helpers
// Description: Parsing and structural helpers for apd decimals: adjusted
//              exponent, mantissa, integral and fractional parts, digit
//              counts and conversions used by the range reductions.
// Author: msto63
// Version: v0.3.1
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Decimal type on big.Rat with business rounding
// - 2026-10-19 v0.3.0: Replaced by helpers over apd.Decimal
// - 2026-10-19 v0.3.1: Exact helpers return apd errors

package mathx

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/msto63/bigmath/foundation/core/errors"
)

// ParseDecimal parses a finite decimal such as "3.14", "-2e-7" or "1E+50"
func ParseDecimal(s string) (*apd.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, errors.Format(errors.ModuleMathx, s, "decimal number")
	}
	d, _, err := apd.NewFromString(trimmed)
	if err != nil || d.Form != apd.Finite {
		return nil, errors.Format(errors.ModuleMathx, s, "decimal number")
	}
	return d, nil
}

// MustParseDecimal is ParseDecimal for literals; it panics on bad input
func MustParseDecimal(s string) *apd.Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Exponent returns the adjusted exponent of x, i.e. the power of ten of
// its most significant digit. Exponent(0) is 0.
func Exponent(x *apd.Decimal) int64 {
	if x.IsZero() {
		return 0
	}
	return x.NumDigits() + int64(x.Exponent) - 1
}

// Mantissa returns x scaled to one digit before the decimal point
func Mantissa(x *apd.Decimal) *apd.Decimal {
	if x.IsZero() {
		return new(apd.Decimal)
	}
	return scaleByPow10(x, -Exponent(x))
}

// IntegralPart returns x truncated toward zero
func IntegralPart(x *apd.Decimal) *apd.Decimal {
	integ, _ := splitIntegral(x)
	return integ
}

// FractionalPart returns x minus its integral part; it carries the sign of x
func FractionalPart(x *apd.Decimal) *apd.Decimal {
	_, frac := splitIntegral(x)
	return frac
}

// SignificantDigits returns the number of digits without trailing zeros
func SignificantDigits(x *apd.Decimal) int64 {
	if x.IsZero() {
		return 0
	}
	reduced, _ := new(apd.Decimal).Reduce(x)
	return reduced.NumDigits()
}

// IsIntValue reports whether x has no fractional part
func IsIntValue(x *apd.Decimal) bool {
	if x.IsZero() || x.Exponent >= 0 {
		return true
	}
	_, frac := splitIntegral(x)
	return frac.IsZero()
}

// IsLongValue reports whether x is an integer that fits into an int64
func IsLongValue(x *apd.Decimal) bool {
	_, ok := int64Value(x)
	return ok
}

// RoundWithTrailingZeros rounds x to p and pads the coefficient with
// zeros so that exactly p.Digits significant digits are shown
func RoundWithTrailingZeros(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	if err := p.Validate("round"); err != nil {
		return nil, err
	}
	d := new(apd.Decimal)
	if _, err := p.Context().Round(d, x); err != nil {
		return nil, errors.Overflow("round", x.String())
	}
	if d.IsZero() {
		return d, nil
	}
	if missing := int64(p.Digits) - d.NumDigits(); missing > 0 {
		coeff := d.Coeff.MathBigInt()
		coeff.Mul(coeff, pow10Big(missing))
		padded := decimalFromBig(coeff, d.Exponent-int32(missing))
		padded.Negative = d.Negative
		return padded, nil
	}
	return d, nil
}

// splitIntegral truncates x toward zero on the integer coefficient
func splitIntegral(x *apd.Decimal) (integ, frac *apd.Decimal) {
	if x.Exponent >= 0 {
		return new(apd.Decimal).Set(x), new(apd.Decimal)
	}
	scale := pow10Big(-int64(x.Exponent))
	q, r := new(big.Int).QuoRem(x.Coeff.MathBigInt(), scale, new(big.Int))
	integ = decimalFromBig(q, 0)
	frac = decimalFromBig(r, x.Exponent)
	integ.Negative = x.Negative && !integ.IsZero()
	frac.Negative = x.Negative && !frac.IsZero()
	return integ, frac
}

// int64Value returns x as int64 when x is an integer in range
func int64Value(x *apd.Decimal) (int64, bool) {
	if x.IsZero() {
		return 0, true
	}
	if x.Exponent >= 0 && x.NumDigits()+int64(x.Exponent) > 19 {
		return 0, false
	}
	integ, frac := splitIntegral(x)
	if !frac.IsZero() {
		return 0, false
	}
	v := integ.Coeff.MathBigInt()
	v.Mul(v, pow10Big(int64(integ.Exponent)))
	if integ.Negative {
		v.Neg(v)
	}
	if !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}

// bigIntValue returns the integral part of x as big.Int
func bigIntValue(x *apd.Decimal) *big.Int {
	integ := IntegralPart(x)
	v := integ.Coeff.MathBigInt()
	if integ.Exponent > 0 {
		v.Mul(v, pow10Big(int64(integ.Exponent)))
	}
	if integ.Negative {
		v.Neg(v)
	}
	return v
}

// decimalFromBig builds v·10^exp with the sign taken from v
func decimalFromBig(v *big.Int, exp int32) *apd.Decimal {
	abs := new(big.Int).Abs(v)
	d := apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(abs), exp)
	d.Negative = v.Sign() < 0
	return d
}

// scaleByPow10 returns x·10^k exactly by moving the exponent
func scaleByPow10(x *apd.Decimal, k int64) *apd.Decimal {
	d := new(apd.Decimal).Set(x)
	d.Exponent = int32(int64(x.Exponent) + k)
	return d
}

// mantissaFloat returns m and e with x ≈ m·10^e and 1 <= |m| < 10. It
// never overflows a float64, whatever the exponent of x.
func mantissaFloat(x *apd.Decimal) (float64, int64) {
	if x.IsZero() {
		return 0, 0
	}
	digits := x.Coeff.MathBigInt().String()
	if len(digits) > 17 {
		digits = digits[:17]
	}
	lead, _ := strconv.ParseFloat(digits, 64)
	lead /= math.Pow(10, float64(len(digits)-1))
	if x.Negative {
		lead = -lead
	}
	return lead, Exponent(x)
}

// toFloat approximates x as float64, saturating at ±Inf and 0
func toFloat(x *apd.Decimal) float64 {
	m, e := mantissaFloat(x)
	switch {
	case m == 0:
		return 0
	case e > 308:
		return math.Copysign(math.Inf(1), m)
	case e < -320:
		return 0
	}
	return m * math.Pow(10, float64(e))
}

// log10Abs approximates log10(|x|) for non-zero x
func log10Abs(x *apd.Decimal) float64 {
	m, e := mantissaFloat(x)
	return math.Log10(math.Abs(m)) + float64(e)
}

// fromFloat converts a finite float64 to a decimal with 15 digits
func fromFloat(f float64) *apd.Decimal {
	d, _, err := apd.NewFromString(strconv.FormatFloat(f, 'e', 14, 64))
	if err != nil {
		return new(apd.Decimal)
	}
	return d
}

// integerDigits returns the number of digits before the decimal point of |x|
func integerDigits(x *apd.Decimal) uint32 {
	e := Exponent(x)
	if x.IsZero() || e < 0 {
		return 0
	}
	return uint32(e + 1)
}

// int64Digits returns the number of decimal digits of |n|
func int64Digits(n int64) uint32 {
	if n < 0 {
		n = -n
	}
	digits := uint32(1)
	for n >= 10 {
		n /= 10
		digits++
	}
	return digits
}

func decimalOne() *apd.Decimal {
	return apd.New(1, 0)
}

func isOne(x *apd.Decimal) bool {
	return x.Cmp(decimalOne()) == 0
}

func negated(x *apd.Decimal) *apd.Decimal {
	return new(apd.Decimal).Neg(x)
}

func absolute(x *apd.Decimal) *apd.Decimal {
	return new(apd.Decimal).Abs(x)
}

// squareNegligible reports x² < 10^-(digits+1). Functions behaving like
// x·(1 + O(x²)) or 1 + O(x²) near zero are then settled by nudge.
func squareNegligible(x *apd.Decimal, digits uint32) bool {
	return !x.IsZero() && 2*(Exponent(x)+1) <= -int64(digits)-1
}

// largeSquare reports x² > 10^(digits+1), where 1 is negligible next to x²
func largeSquare(x *apd.Decimal, digits uint32) bool {
	return 2*Exponent(x) >= int64(digits)+1
}

// nudge moves x by 10^-(digits+2) of its magnitude, away from zero for
// dir > 0 and toward zero for dir < 0. A function value within
// 10^-(digits+1) of x on the same side rounds like the nudged value. When
// the step is below apd's exponent range x is returned unchanged.
func nudge(x *apd.Decimal, digits uint32, dir int) *apd.Decimal {
	exp := Exponent(x) - int64(digits) - 2
	if exp < apd.MinExponent {
		return x
	}
	step := apd.New(1, int32(exp))
	step.Negative = x.Negative != (dir < 0)
	d, err := exactAdd(x, step)
	if err != nil {
		return x
	}
	return d
}

// exactMul multiplies without rounding
func exactMul(x, y *apd.Decimal) (*apd.Decimal, error) {
	d := new(apd.Decimal)
	_, err := apd.BaseContext.Mul(d, x, y)
	return d, err
}

// exactSub subtracts without rounding
func exactSub(x, y *apd.Decimal) (*apd.Decimal, error) {
	d := new(apd.Decimal)
	_, err := apd.BaseContext.Sub(d, x, y)
	return d, err
}

// exactAdd adds without rounding
func exactAdd(x, y *apd.Decimal) (*apd.Decimal, error) {
	d := new(apd.Decimal)
	_, err := apd.BaseContext.Add(d, x, y)
	return d, err
}
