// File: roots.go
// Title: Square and n-th Roots
// Description: Newton-Raphson iterations seeded from float64 with a working
//              precision that grows each step until the requested digits
//              are reached and successive iterates agree.
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
	"github.com/msto63/bigmath/foundation/core/log"
)

const (
	sqrtStartDigits = 15
	rootStartDigits = 12
)

// Sqrt returns the square root of x rounded to p
func (e *EngineContext) Sqrt(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("sqrt", p, func() (*apd.Decimal, error) {
		if x.Sign() < 0 {
			return nil, errors.Domain("sqrt", x.String(), "square root of a negative value")
		}
		return e.sqrt(x, target(p))
	})
}

// Root returns the n-th root of x rounded to p. Non-integer n is computed
// as x^(1/n).
func (e *EngineContext) Root(x, n *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("root", p, func() (*apd.Decimal, error) {
		return e.root(x, n, target(p))
	})
}

// sqrt assumes x >= 0
func (e *EngineContext) sqrt(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if x.IsZero() {
		return new(apd.Decimal), nil
	}

	// x = m·10^(2k) with 1 <= m < 100
	k := Exponent(x)
	if k < 0 {
		k--
	}
	k /= 2
	m := scaleByPow10(x, -2*k)

	seed := fromFloat(math.Sqrt(toFloat(m)))
	if sq, err := exactMul(seed, seed); err == nil && sq.Cmp(m) == 0 {
		return scaleByPow10(seed, k), nil
	}

	maxDigits := digits + 6
	acceptable := acceptableError(digits)
	r := seed
	prec := uint32(sqrtStartDigits)
	for steps := 1; ; steps++ {
		prec *= 2
		if prec > maxDigits {
			prec = maxDigits
		}
		c := newCalc("sqrt", work(prec))
		next := c.quoInt(c.add(r, c.quo(m, r)), 2)
		delta := absolute(c.exactSub(next, r))
		if c.err != nil {
			return nil, c.err
		}
		r = next
		if prec == maxDigits && delta.Cmp(acceptable) <= 0 {
			break
		}
		if e.maxTerms > 0 && steps >= e.maxTerms {
			return nil, errors.NonConvergence("sqrt", steps)
		}
	}
	return scaleByPow10(r, k), nil
}

func (e *EngineContext) root(x, n *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if n.Sign() <= 0 {
		return nil, errors.Domain("root", n.String(), "root index must be positive")
	}

	index, ok := int64Value(n)
	if !ok || index > math.MaxInt32 {
		if x.Sign() < 0 {
			return nil, errors.Domain("root", x.String(), "fractional root of a negative value")
		}
		if x.IsZero() {
			return new(apd.Decimal), nil
		}
		w := digits + 4
		c := newCalc("root", work(w))
		inv := c.quo(decimalOne(), n)
		if c.err != nil {
			return nil, c.err
		}
		return e.pow(x, inv, digits)
	}

	switch {
	case x.IsZero():
		return new(apd.Decimal), nil
	case index == 1:
		return new(apd.Decimal).Set(x), nil
	case x.Sign() < 0 && index%2 == 0:
		return nil, errors.Domain("root", x.String(), "even root of a negative value")
	case x.Sign() < 0:
		v, err := e.root(negated(x), n, digits)
		if err != nil {
			return nil, err
		}
		return negated(v), nil
	case index == 2:
		return e.sqrt(x, digits)
	}
	return e.newtonRoot(x, index, digits)
}

// newtonRoot assumes x > 0 and index >= 3
func (e *EngineContext) newtonRoot(x *apd.Decimal, index int64, digits uint32) (*apd.Decimal, error) {
	// seed 10^(log10(x)/n), split so the float never overflows
	l := log10Abs(x) / float64(index)
	whole := math.Floor(l)
	r := scaleByPow10(fromFloat(math.Pow(10, l-whole)), int64(whole))

	maxDigits := digits + 6
	guard := int64Digits(index)
	acceptable := acceptableError(digits)
	prec := uint32(rootStartDigits)
	for steps := 1; ; steps++ {
		prec *= 3
		if prec > maxDigits {
			prec = maxDigits
		}
		c := newCalc("root", work(prec+guard))
		// r' = r + (x/r^(n-1) - r)/n
		powered := c.powInt(r, index-1)
		delta := c.quoInt(c.sub(c.quo(x, powered), r), index)
		next := c.round(c.add(r, delta))
		if c.err != nil {
			return nil, c.err
		}
		scale := acceptable
		if !next.IsZero() {
			scale = scaleByPow10(acceptable, Exponent(next))
		}
		r = next
		if prec == maxDigits && absolute(delta).Cmp(scale) <= 0 {
			break
		}
		if e.maxTerms > 0 && steps >= e.maxTerms {
			return nil, errors.NonConvergence("root", steps)
		}
	}
	e.logger.Trace("root converged", log.Fields{"index": index, "digits": digits})
	return r, nil
}
