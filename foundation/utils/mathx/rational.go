// File: rational.go
// Title: Exact Rational Numbers
// Description: Immutable p/q rationals on math/big used for series
//              coefficients and Bernoulli numbers. Arithmetic does not
//              reduce by the GCD; Reduce does that on request.
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
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/msto63/bigmath/foundation/core/errors"
)

// Rational is an exact fraction num/den with den > 0. Values are never
// modified after construction.
type Rational struct {
	num *big.Int
	den *big.Int
}

// NewRational returns num/den
func NewRational(num, den int64) (*Rational, error) {
	return NewRationalBig(big.NewInt(num), big.NewInt(den))
}

// NewRationalBig returns num/den; the arguments are copied
func NewRationalBig(num, den *big.Int) (*Rational, error) {
	if den.Sign() == 0 {
		return nil, errors.DivisionByZero(errors.ModuleRational, "new")
	}
	n, d := new(big.Int).Set(num), new(big.Int).Set(den)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	return &Rational{num: n, den: d}, nil
}

// RationalFromInt returns n/1
func RationalFromInt(n int64) *Rational {
	return &Rational{num: big.NewInt(n), den: big.NewInt(1)}
}

// RationalZero returns 0/1
func RationalZero() *Rational {
	return RationalFromInt(0)
}

// RationalOne returns 1/1
func RationalOne() *Rational {
	return RationalFromInt(1)
}

// ParseRational parses "p/q", an integer or a decimal string like "-0.125"
func ParseRational(s string) (*Rational, error) {
	trimmed := strings.TrimSpace(s)
	if num, den, ok := strings.Cut(trimmed, "/"); ok {
		n, okNum := new(big.Int).SetString(strings.TrimSpace(num), 10)
		d, okDen := new(big.Int).SetString(strings.TrimSpace(den), 10)
		if !okNum || !okDen {
			return nil, errors.Format(errors.ModuleRational, s, "p/q with integer p and q")
		}
		return NewRationalBig(n, d)
	}

	dec, err := ParseDecimal(trimmed)
	if err != nil {
		return nil, errors.Format(errors.ModuleRational, s, "p/q or decimal number")
	}
	num := dec.Coeff.MathBigInt()
	if dec.Negative {
		num.Neg(num)
	}
	den := big.NewInt(1)
	if dec.Exponent > 0 {
		num.Mul(num, pow10Big(int64(dec.Exponent)))
	} else {
		den = pow10Big(-int64(dec.Exponent))
	}
	return &Rational{num: num, den: den}, nil
}

// ratio builds a rational from values the caller no longer uses
func ratio(num, den *big.Int) *Rational {
	return &Rational{num: num, den: den}
}

// Numerator returns a copy of the numerator
func (r *Rational) Numerator() *big.Int {
	return new(big.Int).Set(r.num)
}

// Denominator returns a copy of the denominator (always positive)
func (r *Rational) Denominator() *big.Int {
	return new(big.Int).Set(r.den)
}

// Sign returns -1, 0 or +1
func (r *Rational) Sign() int {
	return r.num.Sign()
}

// IsZero reports whether r == 0
func (r *Rational) IsZero() bool {
	return r.num.Sign() == 0
}

// IsInteger reports whether the denominator divides the numerator
func (r *Rational) IsInteger() bool {
	if r.den.Cmp(bigOne) == 0 {
		return true
	}
	return new(big.Int).Rem(r.num, r.den).Sign() == 0
}

// Cmp compares r and o and returns -1, 0 or +1
func (r *Rational) Cmp(o *Rational) int {
	left := new(big.Int).Mul(r.num, o.den)
	right := new(big.Int).Mul(o.num, r.den)
	return left.Cmp(right)
}

// Add returns r + o
func (r *Rational) Add(o *Rational) *Rational {
	if r.den.Cmp(o.den) == 0 {
		return ratio(new(big.Int).Add(r.num, o.num), new(big.Int).Set(r.den))
	}
	num := new(big.Int).Mul(r.num, o.den)
	num.Add(num, new(big.Int).Mul(o.num, r.den))
	return ratio(num, new(big.Int).Mul(r.den, o.den))
}

// Sub returns r - o
func (r *Rational) Sub(o *Rational) *Rational {
	return r.Add(o.Neg())
}

// Mul returns r · o
func (r *Rational) Mul(o *Rational) *Rational {
	return ratio(new(big.Int).Mul(r.num, o.num), new(big.Int).Mul(r.den, o.den))
}

// Quo returns r / o
func (r *Rational) Quo(o *Rational) (*Rational, error) {
	inv, err := o.Reciprocal()
	if err != nil {
		return nil, errors.DivisionByZero(errors.ModuleRational, "quo")
	}
	return r.Mul(inv), nil
}

// AddInt returns r + n
func (r *Rational) AddInt(n int64) *Rational {
	num := new(big.Int).Mul(big.NewInt(n), r.den)
	num.Add(num, r.num)
	return ratio(num, new(big.Int).Set(r.den))
}

// MulInt returns r · n
func (r *Rational) MulInt(n int64) *Rational {
	return ratio(new(big.Int).Mul(r.num, big.NewInt(n)), new(big.Int).Set(r.den))
}

// QuoInt returns r / n
func (r *Rational) QuoInt(n int64) (*Rational, error) {
	if n == 0 {
		return nil, errors.DivisionByZero(errors.ModuleRational, "quo")
	}
	num := new(big.Int).Set(r.num)
	den := new(big.Int).Mul(r.den, big.NewInt(n))
	if n < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	return ratio(num, den), nil
}

// quoBig divides by a positive big.Int without a zero check
func (r *Rational) quoBig(n *big.Int) *Rational {
	return ratio(new(big.Int).Set(r.num), new(big.Int).Mul(r.den, n))
}

// Neg returns -r
func (r *Rational) Neg() *Rational {
	return ratio(new(big.Int).Neg(r.num), new(big.Int).Set(r.den))
}

// Abs returns |r|
func (r *Rational) Abs() *Rational {
	return ratio(new(big.Int).Abs(r.num), new(big.Int).Set(r.den))
}

// Reciprocal returns 1/r
func (r *Rational) Reciprocal() (*Rational, error) {
	if r.IsZero() {
		return nil, errors.DivisionByZero(errors.ModuleRational, "reciprocal")
	}
	return NewRationalBig(r.den, r.num)
}

// Pow returns r^n; a negative n inverts first
func (r *Rational) Pow(n int) (*Rational, error) {
	base := r
	if n < 0 {
		inv, err := r.Reciprocal()
		if err != nil {
			return nil, err
		}
		base, n = inv, -n
	}
	e := big.NewInt(int64(n))
	return ratio(new(big.Int).Exp(base.num, e, nil), new(big.Int).Exp(base.den, e, nil)), nil
}

// Reduce returns r with numerator and denominator divided by their GCD
func (r *Rational) Reduce() *Rational {
	if r.num.Sign() == 0 {
		return RationalZero()
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(r.num), r.den)
	if g.Cmp(bigOne) == 0 {
		return r
	}
	return ratio(new(big.Int).Quo(r.num, g), new(big.Int).Quo(r.den, g))
}

// IntegerPart returns the quotient truncated toward zero
func (r *Rational) IntegerPart() *big.Int {
	return new(big.Int).Quo(r.num, r.den)
}

// FractionPart returns r minus its integer part
func (r *Rational) FractionPart() *Rational {
	return ratio(new(big.Int).Rem(r.num, r.den), new(big.Int).Set(r.den))
}

// Decimal converts r to a decimal rounded to p
func (r *Rational) Decimal(p PrecisionSpec) (*apd.Decimal, error) {
	if err := p.Validate("rational"); err != nil {
		return nil, err
	}
	return quoDecimal(p.Context(), decimalFromBig(r.num, 0), decimalFromBig(r.den, 0))
}

// String returns "p/q", or "p" for integers with denominator one
func (r *Rational) String() string {
	if r.den.Cmp(bigOne) == 0 {
		return r.num.String()
	}
	return r.num.String() + "/" + r.den.String()
}
