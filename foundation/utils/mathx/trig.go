// File: trig.go
// Title: Trigonometric Functions
// Description: sin, cos, tan and cot with reduction modulo 2π and folding
//              into the range where the series converge fast, and the
//              inverse functions asin, acos, atan, atan2 and acot.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Tiny and huge arguments without squaring x

package mathx

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/msto63/bigmath/foundation/core/errors"
)

var (
	// quarterPiBound is just below π/4; smaller arguments need no reduction
	quarterPiBound = apd.New(785, -3)
	// asinSplit is just above 1/√2; larger asin arguments use the complement
	asinSplit   = apd.New(707107, -6)
	acosSplit   = apd.New(707, -3)
	decimalHalf = apd.New(5, -1)
)

// Sin returns the sine of x (radians) rounded to p
func (e *EngineContext) Sin(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("sin", p, func() (*apd.Decimal, error) {
		return e.sin(x, target(p))
	})
}

// Cos returns the cosine of x (radians) rounded to p
func (e *EngineContext) Cos(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("cos", p, func() (*apd.Decimal, error) {
		return e.cos(x, target(p))
	})
}

// Tan returns sin(x)/cos(x) rounded to p
func (e *EngineContext) Tan(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("tan", p, func() (*apd.Decimal, error) {
		return e.tan(x, target(p))
	})
}

// Cot returns cos(x)/sin(x) rounded to p
func (e *EngineContext) Cot(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("cot", p, func() (*apd.Decimal, error) {
		if x.IsZero() {
			return nil, errors.Domain("cot", x.String(), "cotangent of zero is undefined")
		}
		t, err := e.tan(x, target(p)+2)
		if err != nil {
			return nil, err
		}
		c := newCalc("cot", work(target(p)))
		return c.quo(decimalOne(), t), c.err
	})
}

// Asin returns the arc sine of x rounded to p
func (e *EngineContext) Asin(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("asin", p, func() (*apd.Decimal, error) {
		if err := checkUnitInterval("asin", x); err != nil {
			return nil, err
		}
		return e.asin(x, target(p))
	})
}

// Acos returns the arc cosine of x rounded to p
func (e *EngineContext) Acos(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("acos", p, func() (*apd.Decimal, error) {
		if err := checkUnitInterval("acos", x); err != nil {
			return nil, err
		}
		return e.acos(x, target(p))
	})
}

// Atan returns the arc tangent of x rounded to p
func (e *EngineContext) Atan(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("atan", p, func() (*apd.Decimal, error) {
		return e.atan(x, target(p))
	})
}

// Atan2 returns the angle of the point (x, y) in (-π, π], rounded to p
func (e *EngineContext) Atan2(y, x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("atan2", p, func() (*apd.Decimal, error) {
		return e.atan2(y, x, target(p))
	})
}

// Acot returns the arc cotangent of x in (0, π), rounded to p
func (e *EngineContext) Acot(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("acot", p, func() (*apd.Decimal, error) {
		return e.acot(x, target(p))
	})
}

func checkUnitInterval(op string, x *apd.Decimal) error {
	if absolute(x).Cmp(decimalOne()) > 0 {
		return errors.Domain(op, x.String(), "argument must be in [-1, 1]")
	}
	return nil
}

// reduceAngle returns r = x - 2πk in [-π, π] and π, both at w digits
// plus the integer digits of x
func (e *EngineContext) reduceAngle(x *apd.Decimal, w uint32) (r, pi *apd.Decimal, err error) {
	wp := w + 4 + integerDigits(x)
	pi, err = e.pi(wp)
	if err != nil {
		return nil, nil, err
	}
	c := newCalc("reduce", work(wp))
	twoPi := c.mulInt(pi, 2)
	k := nearestInteger(c, c.quo(x, twoPi))
	if c.err != nil {
		return nil, nil, c.err
	}
	if k.IsZero() {
		return x, pi, nil
	}
	r = c.sub(x, c.exactMul(k, twoPi))
	return r, pi, c.err
}

// nearestInteger rounds x to the nearest integer, halves away from zero
func nearestInteger(c *calc, x *apd.Decimal) *apd.Decimal {
	integ, frac := splitIntegral(x)
	if absolute(frac).Cmp(decimalHalf) < 0 {
		return integ
	}
	if x.Negative {
		return c.exactSub(integ, decimalOne())
	}
	return c.exactAdd(integ, decimalOne())
}

func (e *EngineContext) sin(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if x.IsZero() {
		return new(apd.Decimal), nil
	}
	if squareNegligible(x, digits) {
		return nudge(x, digits, -1), nil
	}
	w := digits + 6
	calcs := e.calcs()
	if absolute(x).Cmp(quarterPiBound) <= 0 {
		return calcs.Sin.calculate(x, w)
	}

	r, pi, err := e.reduceAngle(x, w)
	if err != nil {
		return nil, err
	}
	c := newCalc("sin", work(w+4))
	halfPi := c.quoInt(pi, 2)
	switch {
	case r.Cmp(halfPi) > 0:
		r = c.sub(pi, r)
	case r.Cmp(negated(halfPi)) < 0:
		r = c.sub(negated(pi), r)
	}
	if c.err != nil {
		return nil, c.err
	}
	return calcs.Sin.calculate(r, w)
}

func (e *EngineContext) cos(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if x.IsZero() {
		return decimalOne(), nil
	}
	if squareNegligible(x, digits) {
		return nudge(decimalOne(), digits, -1), nil
	}
	w := digits + 6
	calcs := e.calcs()
	if absolute(x).Cmp(quarterPiBound) <= 0 {
		return calcs.Cos.calculate(x, w)
	}

	r, pi, err := e.reduceAngle(absolute(x), w)
	if err != nil {
		return nil, err
	}
	c := newCalc("cos", work(w+4))
	a := absolute(r)
	quarterPi := c.quoInt(pi, 4)
	threeQuarterPi := c.mulInt(quarterPi, 3)
	if c.err != nil {
		return nil, c.err
	}

	switch {
	case a.Cmp(quarterPi) <= 0:
		return calcs.Cos.calculate(a, w)
	case a.Cmp(threeQuarterPi) <= 0:
		return calcs.Sin.calculate(c.sub(c.quoInt(pi, 2), a), w)
	default:
		v, err := calcs.Cos.calculate(c.sub(pi, a), w)
		if err != nil {
			return nil, err
		}
		return negated(v), nil
	}
}

func (e *EngineContext) tan(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if x.IsZero() {
		return new(apd.Decimal), nil
	}
	if squareNegligible(x, digits) {
		return nudge(x, digits, 1), nil
	}
	w := digits + 6
	s, err := e.sin(x, w)
	if err != nil {
		return nil, err
	}
	co, err := e.cos(x, w)
	if err != nil {
		return nil, err
	}
	c := newCalc("tan", work(w))
	return c.quo(s, co), c.err
}

// asin assumes |x| <= 1
func (e *EngineContext) asin(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if x.IsZero() {
		return new(apd.Decimal), nil
	}
	if x.Negative {
		v, err := e.asin(negated(x), digits)
		if err != nil {
			return nil, err
		}
		return negated(v), nil
	}
	if isOne(x) {
		return e.halfPi(digits)
	}
	if squareNegligible(x, digits) {
		return nudge(x, digits, 1), nil
	}
	if x.Cmp(asinSplit) >= 0 {
		// asin(x) = π/2 - asin(√(1-x²)); 1-x² is formed exactly
		w := digits + 2
		c := newCalc("asin", work(w))
		complement := c.exactSub(decimalOne(), c.exactMul(x, x))
		if c.err != nil {
			return nil, c.err
		}
		y, err := e.sqrt(complement, w)
		if err != nil {
			return nil, err
		}
		inner, err := e.asin(y, w)
		if err != nil {
			return nil, err
		}
		halfPi, err := e.halfPi(w)
		if err != nil {
			return nil, err
		}
		return c.sub(halfPi, inner), c.err
	}
	return e.calcs().Asin.calculate(x, digits+6)
}

// acos assumes |x| <= 1
func (e *EngineContext) acos(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	switch {
	case isOne(x):
		return new(apd.Decimal), nil
	case x.Cmp(acosSplit) >= 0:
		c := newCalc("acos", work(digits+2))
		complement := c.exactSub(decimalOne(), c.exactMul(x, x))
		if c.err != nil {
			return nil, c.err
		}
		y, err := e.sqrt(complement, digits+2)
		if err != nil {
			return nil, err
		}
		return e.asin(y, digits)
	case x.Cmp(negated(acosSplit)) <= 0:
		w := digits + 2
		inner, err := e.acos(negated(x), w)
		if err != nil {
			return nil, err
		}
		pi, err := e.pi(w)
		if err != nil {
			return nil, err
		}
		c := newCalc("acos", work(w))
		return c.sub(pi, inner), c.err
	default:
		w := digits + 2
		inner, err := e.asin(x, w)
		if err != nil {
			return nil, err
		}
		halfPi, err := e.halfPi(w)
		if err != nil {
			return nil, err
		}
		c := newCalc("acos", work(w))
		return c.sub(halfPi, inner), c.err
	}
}

func (e *EngineContext) atan(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if x.IsZero() {
		return new(apd.Decimal), nil
	}
	if squareNegligible(x, digits) {
		return nudge(x, digits, -1), nil
	}
	w := digits + 4
	c := newCalc("atan", work(w))

	if absolute(x).Cmp(decimalOne()) <= 0 {
		// atan(x) = asin(x/√(1+x²))
		square := c.exactAdd(decimalOne(), c.exactMul(x, x))
		if c.err != nil {
			return nil, c.err
		}
		root, err := e.sqrt(square, w)
		if err != nil {
			return nil, err
		}
		arg := c.quo(x, root)
		if c.err != nil {
			return nil, c.err
		}
		return e.asin(arg, w)
	}

	// atan(x) = sign(x)·(π/2 - atan(1/|x|))
	inner, err := e.atan(c.quo(decimalOne(), absolute(x)), w)
	if err != nil {
		return nil, err
	}
	halfPi, err := e.halfPi(w)
	if err != nil {
		return nil, err
	}
	result := c.sub(halfPi, inner)
	if x.Negative {
		result = negated(result)
	}
	return result, c.err
}

func (e *EngineContext) atan2(y, x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if x.IsZero() {
		switch y.Sign() {
		case 0:
			return nil, errors.Domain("atan2", "(0, 0)", "angle of the origin is undefined")
		case 1:
			return e.halfPi(digits)
		default:
			v, err := e.halfPi(digits)
			if err != nil {
				return nil, err
			}
			return negated(v), nil
		}
	}

	w := digits + 4
	c := newCalc("atan2", work(w))
	angle, err := e.atan(c.quo(y, x), w)
	if err != nil {
		return nil, err
	}
	if x.Sign() > 0 {
		return angle, nil
	}
	pi, err := e.pi(w)
	if err != nil {
		return nil, err
	}
	if y.Sign() >= 0 {
		return c.add(angle, pi), c.err
	}
	return c.sub(angle, pi), c.err
}

func (e *EngineContext) acot(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if x.IsZero() {
		return e.halfPi(digits)
	}
	w := digits + 4
	c := newCalc("acot", work(w))
	angle, err := e.atan(c.quo(decimalOne(), x), w)
	if err != nil {
		return nil, err
	}
	if x.Sign() > 0 {
		return angle, nil
	}
	pi, err := e.pi(w)
	if err != nil {
		return nil, err
	}
	return c.add(pi, angle), c.err
}

func (e *EngineContext) halfPi(digits uint32) (*apd.Decimal, error) {
	pi, err := e.pi(digits + 1)
	if err != nil {
		return nil, err
	}
	c := newCalc("pi", work(digits+1))
	return c.quoInt(pi, 2), c.err
}
