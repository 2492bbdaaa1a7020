// File: pow.go
// Title: Powers
// Description: x^y with an exponentiation-by-squaring fast path for whole
//              exponents and exp(y·log(x)) otherwise, plus the reciprocal.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package mathx

import (
	"math"

	"github.com/cockroachdb/apd/v3"

	"github.com/msto63/bigmath/foundation/core/errors"
)

// maxResultExponent bounds |log10| of a power result, just inside the
// decimal exponent range
const maxResultExponent = 99990

// Pow returns x^y rounded to p; 0^0 is 1
func (e *EngineContext) Pow(x, y *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("pow", p, func() (*apd.Decimal, error) {
		return e.pow(x, y, target(p))
	})
}

// PowInt returns x^n rounded to p
func (e *EngineContext) PowInt(x *apd.Decimal, n int64, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("pow", p, func() (*apd.Decimal, error) {
		return e.pow(x, apd.New(n, 0), target(p))
	})
}

// Reciprocal returns 1/x rounded to p
func (e *EngineContext) Reciprocal(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("reciprocal", p, func() (*apd.Decimal, error) {
		if x.IsZero() {
			return nil, errors.DivisionByZero(errors.ModuleMathx, "reciprocal")
		}
		c := newCalc("reciprocal", work(target(p)))
		return c.quo(decimalOne(), x), c.err
	})
}

func (e *EngineContext) pow(x, y *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	switch {
	case y.IsZero():
		return decimalOne(), nil
	case x.IsZero():
		if y.Sign() < 0 {
			return nil, errors.Domain("pow", x.String(), "zero raised to a negative power")
		}
		return new(apd.Decimal), nil
	case isOne(x):
		return decimalOne(), nil
	}

	if IsIntValue(y) {
		if n, ok := int64Value(y); ok && n != math.MinInt64 {
			return e.powInteger(x, n, digits)
		}
		// huge whole exponent: the sign comes from its parity
		v, err := e.powReal(absolute(x), y, digits)
		if err != nil {
			return nil, err
		}
		if x.Negative && bigIntValue(y).Bit(0) == 1 {
			v = negated(v)
		}
		return v, nil
	}

	if x.Sign() < 0 {
		return nil, errors.Domain("pow", x.String(), "negative base with a non-integer exponent")
	}
	return e.powReal(x, y, digits)
}

// powInteger raises x to a whole power by squaring
func (e *EngineContext) powInteger(x *apd.Decimal, n int64, digits uint32) (*apd.Decimal, error) {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if math.Abs(float64(abs)*log10Abs(x)) > maxResultExponent {
		return nil, errors.Overflow("pow", x.String())
	}

	w := digits + 10 + int64Digits(abs)
	c := newCalc("pow", work(w))
	result := c.powInt(c.round(x), abs)
	if n < 0 {
		result = c.quo(decimalOne(), result)
	}
	return result, c.err
}

// powReal assumes x > 0
func (e *EngineContext) powReal(x, y *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	estimate := math.Abs(toFloat(y) * log10Abs(x) * math.Ln10)
	if estimate/math.Ln10 > maxResultExponent {
		return nil, errors.Overflow("pow", x.String())
	}

	w := digits + 6
	if estimate >= 1 {
		w += uint32(math.Log10(estimate)) + 1
	}
	l, err := e.log(x, w)
	if err != nil {
		return nil, err
	}
	c := newCalc("pow", work(w))
	product := c.mul(y, l)
	if c.err != nil {
		return nil, c.err
	}
	return e.exp(product, digits)
}
