// File: log.go
// Title: Logarithms
// Description: Natural logarithm via 2·atanh((m-1)/(m+1)) after removing
//              powers of ten, two and three from the argument, plus log2,
//              log10 and logarithms to an arbitrary base.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package mathx

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/msto63/bigmath/foundation/core/errors"
)

// logBand removes 2^twos · 3^threes from arguments below upper so that
// the remaining factor lies close to one
type logBand struct {
	upper  float64
	twos   int64
	threes int64
}

var logBands = []logBand{
	{0.115, 0, -2},
	{0.14, -3, 0},
	{0.2, -1, -1},
	{0.3, -2, 0},
	{0.42, 0, -1},
	{0.7, -1, 0},
	{1.4, 0, 0},
	{2.5, 1, 0},
	{3.5, 0, 1},
	{5, 2, 0},
	{7, 1, 1},
	{8.5, 3, 0},
	{10, 0, 2},
}

var (
	decimalTenth = apd.New(1, -1)
	decimalTen   = apd.New(10, 0)
)

// Log returns the natural logarithm of x rounded to p
func (e *EngineContext) Log(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("log", p, func() (*apd.Decimal, error) {
		if err := checkLogDomain("log", x); err != nil {
			return nil, err
		}
		return e.log(x, target(p))
	})
}

// Log2 returns the base 2 logarithm of x rounded to p
func (e *EngineContext) Log2(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("log2", p, func() (*apd.Decimal, error) {
		if err := checkLogDomain("log2", x); err != nil {
			return nil, err
		}
		return e.logRatio(x, func(w uint32) (*apd.Decimal, error) { return e.ln2(w) }, target(p))
	})
}

// Log10 returns the base 10 logarithm of x rounded to p
func (e *EngineContext) Log10(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("log10", p, func() (*apd.Decimal, error) {
		if err := checkLogDomain("log10", x); err != nil {
			return nil, err
		}
		return e.logRatio(x, func(w uint32) (*apd.Decimal, error) { return e.ln10(w) }, target(p))
	})
}

// LogBase returns the logarithm of x to base b rounded to p
func (e *EngineContext) LogBase(x, b *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("logbase", p, func() (*apd.Decimal, error) {
		if err := checkLogDomain("logbase", x); err != nil {
			return nil, err
		}
		if b.Sign() <= 0 || isOne(b) {
			return nil, errors.Domain("logbase", b.String(), "base must be positive and not one")
		}
		return e.logRatio(x, func(w uint32) (*apd.Decimal, error) { return e.log(b, w) }, target(p))
	})
}

func checkLogDomain(op string, x *apd.Decimal) error {
	if x.Sign() <= 0 {
		return errors.Domain(op, x.String(), "argument must be positive")
	}
	return nil
}

// logRatio returns log(x)/denominator(w)
func (e *EngineContext) logRatio(x *apd.Decimal, denominator func(w uint32) (*apd.Decimal, error), digits uint32) (*apd.Decimal, error) {
	w := digits + 4
	num, err := e.log(x, w)
	if err != nil {
		return nil, err
	}
	den, err := denominator(w)
	if err != nil {
		return nil, err
	}
	c := newCalc("log", work(digits))
	return c.quo(num, den), c.err
}

// log assumes x > 0
func (e *EngineContext) log(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if isOne(x) {
		return new(apd.Decimal), nil
	}
	if x.Cmp(decimalTen) == 0 {
		return e.ln10(digits)
	}

	if x.Cmp(decimalTenth) < 0 || x.Cmp(decimalTen) >= 0 {
		exp := Exponent(x)
		w := digits + e.guardDigits + int64Digits(exp)
		mantissa := scaleByPow10(x, -exp)
		logMantissa, err := e.log(mantissa, w)
		if err != nil {
			return nil, err
		}
		l10, err := e.ln10(w)
		if err != nil {
			return nil, err
		}
		c := newCalc("log", work(w))
		return c.add(logMantissa, c.mulInt(l10, exp)), c.err
	}

	w := digits + e.guardDigits + 2
	c := newCalc("log", work(w))

	band := bandFor(toFloat(x))
	m := x
	if num, den := bandFactors(band); den != 1 {
		m = c.quoInt(c.exactMul(x, apd.New(num, 0)), den)
	} else if num != 1 {
		m = c.exactMul(x, apd.New(num, 0))
	}

	z := c.quo(c.exactSub(m, decimalOne()), c.exactAdd(m, decimalOne()))
	if c.err != nil {
		return nil, c.err
	}
	atanh, err := e.calcs().Atanh.calculate(z, w)
	if err != nil {
		return nil, err
	}
	result := c.mulInt(atanh, 2)

	if band.twos != 0 {
		l2, err := e.ln2(w)
		if err != nil {
			return nil, err
		}
		result = c.add(result, c.mulInt(l2, band.twos))
	}
	if band.threes != 0 {
		l3, err := e.ln3(w)
		if err != nil {
			return nil, err
		}
		result = c.add(result, c.mulInt(l3, band.threes))
	}
	return result, c.err
}

func bandFor(f float64) logBand {
	for _, b := range logBands {
		if f < b.upper {
			return b
		}
	}
	return logBands[len(logBands)-1]
}

// bandFactors returns num and den with m = x·num/den for band b
func bandFactors(b logBand) (num, den int64) {
	num, den = 1, 1
	scale := func(base, k int64) {
		for ; k > 0; k-- {
			den *= base
		}
		for ; k < 0; k++ {
			num *= base
		}
	}
	scale(2, b.twos)
	scale(3, b.threes)
	return num, den
}
