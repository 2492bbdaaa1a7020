// File: factorial.go
// Title: Factorial, Gamma and Bernoulli Numbers
// Description: Exact cached factorials, the gamma function via Spouge's
//              approximation with per-precision coefficient caching, and
//              exact Bernoulli numbers.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package mathx

import (
	"math/big"
	"sync"

	"github.com/cockroachdb/apd/v3"

	"github.com/msto63/bigmath/foundation/core/errors"
	"github.com/msto63/bigmath/foundation/core/log"
)

// maxExactGamma is the largest integer argument gamma computes as (n-1)!
const maxExactGamma = 5000

func factorialRecurrence(n int, prefix []*big.Int) *big.Int {
	if n == 0 {
		return big.NewInt(1)
	}
	return new(big.Int).Mul(prefix[n-1], big.NewInt(int64(n)))
}

// bernoulliRecurrence computes B_2j from B_0, B_2, ..., B_2(j-1) and
// B_1 = -1/2 using sum_{k=0}^{m} C(m+1, k)·B_k = 0
func bernoulliRecurrence(j int, prefix []*Rational) *Rational {
	if j == 0 {
		return RationalOne()
	}
	m := int64(2 * j)
	binom := new(big.Int)

	sum := RationalFromInt(0)
	for i, b := range prefix {
		binom.Binomial(m+1, int64(2*i))
		sum = sum.Add(ratio(new(big.Int).Mul(b.num, binom), new(big.Int).Set(b.den))).Reduce()
	}
	// k = 1 term: C(m+1, 1)·(-1/2)
	sum = sum.Add(ratio(big.NewInt(-(m + 1)), big.NewInt(2))).Reduce()

	return ratio(new(big.Int).Neg(sum.num), new(big.Int).Mul(sum.den, big.NewInt(m+1))).Reduce()
}

// Factorial returns n! exactly
func (e *EngineContext) Factorial(n int) (*big.Int, error) {
	if n < 0 {
		return nil, errors.InvalidInput(errors.ModuleMathx, "factorial", n, "non-negative integer")
	}
	return new(big.Int).Set(e.factorials.get(n)), nil
}

// Bernoulli returns the n-th Bernoulli number with B1 = -1/2
func (e *EngineContext) Bernoulli(n int) (*Rational, error) {
	switch {
	case n < 0:
		return nil, errors.InvalidInput(errors.ModuleMathx, "bernoulli", n, "non-negative integer")
	case n == 1:
		return ratio(big.NewInt(-1), big.NewInt(2)), nil
	case n%2 == 1:
		return RationalZero(), nil
	}
	return e.bernoulli.get(n / 2), nil
}

// FactorialDecimal returns x! = Γ(x+1) rounded to p
func (e *EngineContext) FactorialDecimal(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("factorial", p, func() (*apd.Decimal, error) {
		c := newCalc("factorial", work(target(p)))
		shifted := c.exactAdd(x, decimalOne())
		if c.err != nil {
			return nil, c.err
		}
		return e.gamma(shifted, target(p))
	})
}

// Gamma returns Γ(x) rounded to p
func (e *EngineContext) Gamma(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call("gamma", p, func() (*apd.Decimal, error) {
		return e.gamma(x, target(p))
	})
}

func (e *EngineContext) gamma(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	if IsIntValue(x) {
		if x.Sign() <= 0 {
			return nil, errors.Domain("gamma", x.String(), "gamma is undefined at non-positive integers")
		}
		if n, ok := int64Value(x); ok && n <= maxExactGamma {
			return decimalFromBig(e.factorials.get(int(n-1)), 0), nil
		}
	}

	switch {
	case x.Sign() < 0:
		return e.gammaReflection(x, digits)
	case x.Cmp(decimalOne()) < 0:
		return e.gammaShifted(x, digits)
	}
	return e.spougeGamma(x, digits)
}

// gammaShifted uses Γ(x) = Γ(x+1)/x for 0 < x < 1
func (e *EngineContext) gammaShifted(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	w := digits + 2
	c := newCalc("gamma", work(w))
	shifted := c.exactAdd(x, decimalOne())
	if c.err != nil {
		return nil, c.err
	}
	g, err := e.spougeGamma(shifted, w)
	if err != nil {
		return nil, err
	}
	return c.quo(g, x), c.err
}

// gammaReflection uses Γ(x) = π/(sin(πx)·Γ(1-x))
func (e *EngineContext) gammaReflection(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	w := digits + 4 + integerDigits(x)
	pi, err := e.pi(w)
	if err != nil {
		return nil, err
	}
	c := newCalc("gamma", work(w))
	s, err := e.sin(c.mul(pi, x), w)
	if err != nil {
		return nil, err
	}
	mirrored := c.exactSub(decimalOne(), x)
	if c.err != nil {
		return nil, c.err
	}
	g, err := e.gamma(mirrored, w)
	if err != nil {
		return nil, err
	}
	return c.quo(pi, c.mul(s, g)), c.err
}

// spougeCoefficients holds c_0..c_{a-1} computed at one precision
type spougeCoefficients struct {
	a      int64
	digits uint32
	coeffs []*apd.Decimal
}

type spougeCache struct {
	mu      sync.Mutex
	entries map[int64]*spougeCoefficients
}

func newSpougeCache() *spougeCache {
	return &spougeCache{entries: make(map[int64]*spougeCoefficients)}
}

// spougeGamma assumes x >= 1. With a = ⌈1.3·digits⌉ the relative error
// of the approximation is below 10^-digits.
func (e *EngineContext) spougeGamma(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	a := int64(digits)*13/10 + 1
	sc, err := e.spougeCoefficients(a)
	if err != nil {
		return nil, err
	}

	w := sc.digits
	c := newCalc("gamma", work(w))
	z := c.exactSub(x, decimalOne())

	sum := sc.coeffs[0]
	for k := int64(1); k < a; k++ {
		sum = c.add(sum, c.quo(sc.coeffs[k], c.exactAdd(z, apd.New(k, 0))))
	}

	za := c.exactAdd(z, apd.New(a, 0))
	zh := c.exactAdd(z, decimalHalf)
	if c.err != nil {
		return nil, c.err
	}
	powered, err := e.powReal(za, zh, w)
	if err != nil {
		return nil, err
	}
	decay, err := e.exp(negated(za), w)
	if err != nil {
		return nil, err
	}
	return c.mul(c.mul(powered, decay), sum), c.err
}

// spougeCoefficients returns c_0 = √(2π) and
// c_k = (-1)^(k-1)/(k-1)! · (a-k)^(k-1/2) · e^(a-k)
func (e *EngineContext) spougeCoefficients(a int64) (*spougeCoefficients, error) {
	e.spouge.mu.Lock()
	defer e.spouge.mu.Unlock()
	if sc, ok := e.spouge.entries[a]; ok {
		return sc, nil
	}

	// the alternating sum cancels roughly a/2 digits
	w := uint32(a*3/2) + 10
	c := newCalc("gamma", work(w))

	pi, err := e.pi(w)
	if err != nil {
		return nil, err
	}
	c0, err := e.sqrt(c.mulInt(pi, 2), w)
	if err != nil {
		return nil, err
	}
	euler, err := e.constants.get(ConstE, w)
	if err != nil {
		return nil, err
	}

	coeffs := make([]*apd.Decimal, a)
	coeffs[0] = c0
	// e^(a-k) for k = a-1 down to 1 is e^1, e^2, ...
	expPowers := make([]*apd.Decimal, a)
	current := decimalOne()
	for j := int64(1); j < a; j++ {
		current = c.mul(current, euler)
		expPowers[j] = current
	}

	for k := int64(1); k < a; k++ {
		base := apd.New(a-k, 0)
		root, err := e.sqrt(base, w)
		if err != nil {
			return nil, err
		}
		// (a-k)^(k-1/2) = (a-k)^(k-1)·√(a-k)
		term := c.mul(c.powInt(base, k-1), root)
		term = c.mul(term, expPowers[a-k])
		term = c.quo(term, decimalFromBig(e.factorials.get(int(k-1)), 0))
		if k%2 == 0 {
			term = negated(term)
		}
		coeffs[k] = term
	}
	if c.err != nil {
		return nil, c.err
	}

	sc := &spougeCoefficients{a: a, digits: w, coeffs: coeffs}
	e.spouge.entries[a] = sc
	e.logger.Debug("spouge coefficients computed", log.Fields{"a": a, "digits": w})
	return sc, nil
}
