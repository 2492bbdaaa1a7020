// File: series.go
// Title: Series Evaluation
// Description: The generic Taylor/Maclaurin summation loop. A SeriesSpec
//              names a coefficient cache and a power sequence; Evaluate
//              sums terms at working precision until a term falls below
//              the acceptable error and rounds the sum.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Evaluate honours the requested rounding mode

package mathx

import (
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/msto63/bigmath/foundation/core/errors"
	"github.com/msto63/bigmath/foundation/core/log"
)

// SeriesSpec describes a power series as data
type SeriesSpec struct {
	Name         Family
	Coefficients *CoefficientCache
	Power        PowerKind
	// Pairwise sums two terms before each convergence check. Used for
	// series whose consecutive terms alternate or pair up.
	Pairwise bool
}

// Evaluate sums the series described by spec at x and rounds to p with
// p's rounding mode. x must lie in the range where the series converges
// with decreasing terms; the public functions reduce their arguments
// before calling it.
func (e *EngineContext) Evaluate(x *apd.Decimal, p PrecisionSpec, spec SeriesSpec) (*apd.Decimal, error) {
	return e.call(string(spec.Name), p, func() (*apd.Decimal, error) {
		return e.series(spec, x, target(p))
	})
}

// series returns the sum rounded half-even to digits. The stop threshold
// 10^-(digits+1) is relative: it is scaled by the magnitude of the first
// term, so small arguments keep their full relative precision.
func (e *EngineContext) series(spec SeriesSpec, x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	start := time.Now()
	c := newCalc(string(spec.Name), work(digits+e.guardDigits))
	powers := newPowerSequence(spec.Power, x, c)

	first := e.term(c, spec, 0, powers.Current())
	if x.IsZero() || first.IsZero() {
		return c.round(first), c.err
	}

	acceptable := acceptableError(digits)
	acceptable.Exponent += int32(Exponent(first))

	sum := first
	terms := 1
	for {
		step := e.nextTerm(c, spec, powers, terms)
		sum = c.add(sum, step)
		terms++
		if spec.Pairwise {
			step = e.nextTerm(c, spec, powers, terms)
			sum = c.add(sum, step)
			terms++
		}
		if c.err != nil {
			return nil, c.err
		}
		if absolute(step).Cmp(acceptable) <= 0 {
			break
		}
		if e.maxTerms > 0 && terms >= e.maxTerms {
			e.logger.Debug("series did not converge", log.Fields{"function": string(spec.Name), "terms": terms, "digits": digits})
			return nil, errors.NonConvergence(string(spec.Name), terms)
		}
	}

	elapsed := time.Since(start)
	e.observer.ObserveSeries(string(spec.Name), terms, digits, elapsed)
	e.logger.Trace("series converged", log.Fields{"function": string(spec.Name), "terms": terms, "digits": digits, "duration_ms": elapsed.Milliseconds()})

	result := work(digits).Context()
	out := new(apd.Decimal)
	if _, err := result.Round(out, sum); err != nil {
		return nil, errors.Overflow(string(spec.Name), err.Error())
	}
	return out, nil
}

func (e *EngineContext) nextTerm(c *calc, spec SeriesSpec, powers PowerSequence, i int) *apd.Decimal {
	powers.Advance()
	return e.term(c, spec, i, powers.Current())
}

// term returns coefficient i times power at working precision
func (e *EngineContext) term(c *calc, spec SeriesSpec, i int, power *apd.Decimal) *apd.Decimal {
	coeff := spec.Coefficients.Get(i)
	num := decimalFromBig(coeff.num, 0)
	if coeff.den.Cmp(bigOne) == 0 {
		return c.mul(num, power)
	}
	return c.quo(c.mul(num, power), decimalFromBig(coeff.den, 0))
}
