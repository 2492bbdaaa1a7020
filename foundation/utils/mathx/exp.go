// File: exp.go
// Title: Exponential Function
// Description: exp(x) by splitting x into integral and fractional parts.
//              Small arguments use exp(x/256)^256; larger ones evaluate the
//              series at 1 + frac/int and raise the result to int.
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

// maxExpArgument bounds |x| so that exp(x) stays inside the decimal
// exponent range
const maxExpArgument = 230000

// Exp returns e^x rounded to p
func (e *EngineContext) Exp(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("exp", p, func() (*apd.Decimal, error) {
		return e.exp(x, target(p))
	})
}

// target is the internal precision of a public call
func target(p PrecisionSpec) uint32 {
	return p.Digits + roundingMargin
}

func (e *EngineContext) exp(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if x.IsZero() {
		return decimalOne(), nil
	}
	if math.Abs(toFloat(x)) > maxExpArgument {
		return nil, errors.Overflow("exp", x.String())
	}

	integ, frac := splitIntegral(x)
	n, _ := int64Value(integ)
	calcs := e.calcs()

	if n == 0 {
		w := digits + 6
		c := newCalc("exp", work(w))
		reduced := c.quoInt(x, 256)
		if c.err != nil {
			return nil, c.err
		}
		t, err := calcs.Exp.calculate(reduced, w)
		if err != nil {
			return nil, err
		}
		return c.powInt(t, 256), c.err
	}

	w := digits + 10 + int64Digits(n)
	c := newCalc("exp", work(w))
	z := c.add(decimalOne(), c.quoInt(frac, n))
	if c.err != nil {
		return nil, c.err
	}
	t, err := calcs.Exp.calculate(z, w)
	if err != nil {
		return nil, err
	}

	if n < 0 {
		result := c.powInt(t, -n)
		return c.quo(decimalOne(), result), c.err
	}
	return c.powInt(t, n), c.err
}
