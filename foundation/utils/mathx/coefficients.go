// File: coefficients.go
// Title: Series Coefficient Caches
// Description: Exact rational Taylor coefficients for the series families
//              (exp, sin, cos, sinh, cosh, asin, atanh). Each family derives
//              coefficient n from coefficient n-1 and caches the result.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package mathx

import "math/big"

// Family names a series and doubles as its cache and metrics label
type Family string

const (
	FamilyExp   Family = "exp"
	FamilySin   Family = "sin"
	FamilyCos   Family = "cos"
	FamilySinh  Family = "sinh"
	FamilyCosh  Family = "cosh"
	FamilyAsin  Family = "asin"
	FamilyAtanh Family = "atanh"
)

// Families lists every series family in a stable order
var Families = []Family{FamilyExp, FamilySin, FamilyCos, FamilySinh, FamilyCosh, FamilyAsin, FamilyAtanh}

// Recurrence computes coefficient i from the coefficients before it
type Recurrence func(i int, prev []*Rational) *Rational

// CoefficientCache holds the exact coefficients of one series. It only
// grows; Get on an index beyond the cached length extends it under a lock.
type CoefficientCache struct {
	family  Family
	entries *appendOnlyCache[*Rational]
}

// NewCoefficientCache returns an empty cache for the given recurrence
func NewCoefficientCache(family Family, next Recurrence) *CoefficientCache {
	return &CoefficientCache{
		family:  family,
		entries: newAppendOnlyCache(recurrence[*Rational](next)),
	}
}

// Family returns the series the cache belongs to
func (c *CoefficientCache) Family() Family {
	return c.family
}

// Get returns coefficient i
func (c *CoefficientCache) Get(i int) *Rational {
	return c.entries.get(i)
}

// Len returns the number of cached coefficients
func (c *CoefficientCache) Len() int {
	return c.entries.size()
}

// Warm makes sure the first n coefficients are cached
func (c *CoefficientCache) Warm(n int) {
	c.entries.extend(n)
}

// fromPrevious builds a recurrence c_i = c_{i-1} · num(i)/den(i) with c_0 = 1
func fromPrevious(num, den func(i int64) int64, negate, reduce bool) Recurrence {
	return func(i int, prev []*Rational) *Rational {
		if i == 0 {
			return RationalOne()
		}
		n := int64(i)
		last := prev[i-1]
		next := ratio(
			new(big.Int).Mul(last.num, big.NewInt(num(n))),
			new(big.Int).Mul(last.den, big.NewInt(den(n))),
		)
		if negate {
			next.num.Neg(next.num)
		}
		if reduce {
			return next.Reduce()
		}
		return next
	}
}

func one(int64) int64 { return 1 }

// ExpRecurrence yields 1/i!
func ExpRecurrence() Recurrence {
	return fromPrevious(one, func(i int64) int64 { return i }, false, false)
}

// SinRecurrence yields (-1)^i/(2i+1)!
func SinRecurrence() Recurrence {
	return fromPrevious(one, func(i int64) int64 { return 2 * i * (2*i + 1) }, true, false)
}

// CosRecurrence yields (-1)^i/(2i)!
func CosRecurrence() Recurrence {
	return fromPrevious(one, func(i int64) int64 { return (2*i - 1) * 2 * i }, true, false)
}

// SinhRecurrence yields 1/(2i+1)!
func SinhRecurrence() Recurrence {
	return fromPrevious(one, func(i int64) int64 { return 2 * i * (2*i + 1) }, false, false)
}

// CoshRecurrence yields 1/(2i)!
func CoshRecurrence() Recurrence {
	return fromPrevious(one, func(i int64) int64 { return (2*i - 1) * 2 * i }, false, false)
}

// AsinRecurrence yields (2i)!/(4^i (i!)^2 (2i+1))
func AsinRecurrence() Recurrence {
	return fromPrevious(
		func(i int64) int64 { return (2*i - 1) * (2*i - 1) },
		func(i int64) int64 { return 2 * i * (2*i + 1) },
		false, true,
	)
}

// AtanhRecurrence yields 1/(2i+1)
func AtanhRecurrence() Recurrence {
	return func(i int, _ []*Rational) *Rational {
		return ratio(big.NewInt(1), big.NewInt(int64(2*i+1)))
	}
}

// recurrenceFor returns the recurrence of a family
func recurrenceFor(f Family) Recurrence {
	switch f {
	case FamilyExp:
		return ExpRecurrence()
	case FamilySin:
		return SinRecurrence()
	case FamilyCos:
		return CosRecurrence()
	case FamilySinh:
		return SinhRecurrence()
	case FamilyCosh:
		return CoshRecurrence()
	case FamilyAsin:
		return AsinRecurrence()
	default:
		return AtanhRecurrence()
	}
}
