// File: hyperbolic.go
// Title: Hyperbolic Functions
// Description: sinh, cosh, tanh and coth from their series near zero and
//              from exp elsewhere, and the inverse functions asinh, acosh,
//              atanh and acoth via atanh and log identities.
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
	"math"

	"github.com/cockroachdb/apd/v3"

	"github.com/msto63/bigmath/foundation/core/errors"
)

var decimalTwo = apd.New(2, 0)

// Sinh returns the hyperbolic sine of x rounded to p
func (e *EngineContext) Sinh(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("sinh", p, func() (*apd.Decimal, error) {
		return e.sinh(x, target(p))
	})
}

// Cosh returns the hyperbolic cosine of x rounded to p
func (e *EngineContext) Cosh(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("cosh", p, func() (*apd.Decimal, error) {
		return e.cosh(x, target(p))
	})
}

// Tanh returns the hyperbolic tangent of x rounded to p
func (e *EngineContext) Tanh(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("tanh", p, func() (*apd.Decimal, error) {
		return e.tanh(x, target(p))
	})
}

// Coth returns the hyperbolic cotangent of x rounded to p
func (e *EngineContext) Coth(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("coth", p, func() (*apd.Decimal, error) {
		if x.IsZero() {
			return nil, errors.Domain("coth", x.String(), "hyperbolic cotangent of zero is undefined")
		}
		w := target(p) + 2
		t, err := e.tanh(x, w)
		if err != nil {
			return nil, err
		}
		c := newCalc("coth", work(w))
		return c.quo(decimalOne(), t), c.err
	})
}

// Asinh returns the inverse hyperbolic sine of x rounded to p
func (e *EngineContext) Asinh(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("asinh", p, func() (*apd.Decimal, error) {
		return e.asinh(x, target(p))
	})
}

// Acosh returns the inverse hyperbolic cosine of x rounded to p
func (e *EngineContext) Acosh(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("acosh", p, func() (*apd.Decimal, error) {
		if x.Cmp(decimalOne()) < 0 {
			return nil, errors.Domain("acosh", x.String(), "argument must be >= 1")
		}
		return e.acosh(x, target(p))
	})
}

// Atanh returns the inverse hyperbolic tangent of x rounded to p
func (e *EngineContext) Atanh(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("atanh", p, func() (*apd.Decimal, error) {
		if absolute(x).Cmp(decimalOne()) >= 0 {
			return nil, errors.Domain("atanh", x.String(), "argument must be in (-1, 1)")
		}
		return e.atanh(x, target(p))
	})
}

// Acoth returns the inverse hyperbolic cotangent of x rounded to p
func (e *EngineContext) Acoth(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("acoth", p, func() (*apd.Decimal, error) {
		if absolute(x).Cmp(decimalOne()) <= 0 {
			return nil, errors.Domain("acoth", x.String(), "argument must satisfy |x| > 1")
		}
		w := target(p) + 2
		c := newCalc("acoth", work(w))
		inv := c.quo(decimalOne(), x)
		if c.err != nil {
			return nil, c.err
		}
		return e.atanh(inv, w)
	})
}

// expPair returns e^|x| and e^-|x|
func (e *EngineContext) expPair(x *apd.Decimal, w uint32) (pos, neg *apd.Decimal, err error) {
	pos, err = e.exp(absolute(x), w)
	if err != nil {
		return nil, nil, err
	}
	c := newCalc("exp", work(w))
	neg = c.quo(decimalOne(), pos)
	return pos, neg, c.err
}

func (e *EngineContext) sinh(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if x.IsZero() {
		return new(apd.Decimal), nil
	}
	if squareNegligible(x, digits) {
		return nudge(x, digits, 1), nil
	}
	w := digits + 4
	if absolute(x).Cmp(decimalOne()) <= 0 {
		return e.calcs().Sinh.calculate(x, w)
	}
	pos, neg, err := e.expPair(x, w)
	if err != nil {
		return nil, err
	}
	c := newCalc("sinh", work(w))
	result := c.quoInt(c.sub(pos, neg), 2)
	if x.Negative {
		result = negated(result)
	}
	return result, c.err
}

func (e *EngineContext) cosh(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if x.IsZero() {
		return decimalOne(), nil
	}
	if squareNegligible(x, digits) {
		return nudge(decimalOne(), digits, 1), nil
	}
	w := digits + 4
	if absolute(x).Cmp(decimalOne()) <= 0 {
		return e.calcs().Cosh.calculate(x, w)
	}
	pos, neg, err := e.expPair(x, w)
	if err != nil {
		return nil, err
	}
	c := newCalc("cosh", work(w))
	return c.quoInt(c.add(pos, neg), 2), c.err
}

func (e *EngineContext) tanh(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if x.IsZero() {
		return new(apd.Decimal), nil
	}
	if squareNegligible(x, digits) {
		return nudge(x, digits, -1), nil
	}
	w := digits + 6
	c := newCalc("tanh", work(w))

	if absolute(x).Cmp(decimalOne()) <= 0 {
		s, err := e.calcs().Sinh.calculate(x, w)
		if err != nil {
			return nil, err
		}
		co, err := e.calcs().Cosh.calculate(x, w)
		if err != nil {
			return nil, err
		}
		return c.quo(s, co), c.err
	}

	// beyond this bound e^-2|x| is below the last digit and tanh is ±1
	if 2*math.Abs(toFloat(x)) > float64(w+2)*math.Ln10 {
		if x.Negative {
			return negated(decimalOne()), nil
		}
		return decimalOne(), nil
	}

	// tanh(|x|) = (1 - e^-2|x|)/(1 + e^-2|x|)
	t, err := e.exp(negated(c.mulInt(absolute(x), 2)), w)
	if err != nil {
		return nil, err
	}
	result := c.quo(c.sub(decimalOne(), t), c.add(decimalOne(), t))
	if x.Negative {
		result = negated(result)
	}
	return result, c.err
}

func (e *EngineContext) asinh(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if x.IsZero() {
		return new(apd.Decimal), nil
	}
	if x.Negative {
		v, err := e.asinh(negated(x), digits)
		if err != nil {
			return nil, err
		}
		return negated(v), nil
	}

	if squareNegligible(x, digits) {
		return nudge(x, digits, -1), nil
	}

	w := digits + 4
	c := newCalc("asinh", work(w))
	if largeSquare(x, w) {
		// asinh(x) = log(2x) + O(1/x²)
		return e.log(c.mulInt(x, 2), w)
	}
	root, err := e.sqrt(c.exactAdd(c.exactMul(x, x), decimalOne()), w)
	if err != nil {
		return nil, err
	}
	if c.err != nil {
		return nil, c.err
	}
	if x.Cmp(decimalHalf) <= 0 {
		// asinh(x) = atanh(x/√(1+x²)) keeps small arguments exact
		arg := c.quo(x, root)
		if c.err != nil {
			return nil, c.err
		}
		return e.atanh(arg, w)
	}
	return e.log(c.add(x, root), w)
}

// acosh assumes x >= 1
func (e *EngineContext) acosh(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if isOne(x) {
		return new(apd.Decimal), nil
	}
	w := digits + 4
	c := newCalc("acosh", work(w))

	if x.Cmp(decimalTwo) < 0 {
		// acosh(x) = 2·atanh(√((x-1)/(x+1)))
		ratio := c.quo(c.exactSub(x, decimalOne()), c.exactAdd(x, decimalOne()))
		if c.err != nil {
			return nil, c.err
		}
		root, err := e.sqrt(ratio, w)
		if err != nil {
			return nil, err
		}
		v, err := e.atanh(root, w)
		if err != nil {
			return nil, err
		}
		return c.mulInt(v, 2), c.err
	}

	if largeSquare(x, w) {
		// acosh(x) = log(2x) - O(1/x²)
		return e.log(c.mulInt(x, 2), w)
	}
	square := c.exactSub(c.exactMul(x, x), decimalOne())
	if c.err != nil {
		return nil, c.err
	}
	root, err := e.sqrt(square, w)
	if err != nil {
		return nil, err
	}
	return e.log(c.add(x, root), w)
}

// atanh assumes |x| < 1
func (e *EngineContext) atanh(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if x.IsZero() {
		return new(apd.Decimal), nil
	}
	if squareNegligible(x, digits) {
		return nudge(x, digits, 1), nil
	}
	w := digits + 4
	if absolute(x).Cmp(decimalHalf) <= 0 {
		return e.calcs().Atanh.calculate(x, w)
	}

	// atanh(x) = ½·log((1+x)/(1-x)); 1±x are exact
	c := newCalc("atanh", work(w))
	q := c.quo(c.exactAdd(decimalOne(), x), c.exactSub(decimalOne(), x))
	if c.err != nil {
		return nil, c.err
	}
	l, err := e.log(q, w)
	if err != nil {
		return nil, err
	}
	return c.quoInt(l, 2), c.err
}
