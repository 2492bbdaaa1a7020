// File: power.go
// Title: Power Sequences
// Description: Generators for the successive powers a series multiplies
//              its coefficients with: x^n, x^2n and x^(2n+1). Each step is
//              one multiplication at working precision.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package mathx

import "github.com/cockroachdb/apd/v3"

// PowerKind selects the power sequence of a series
type PowerKind int

const (
	// PowerKindN produces 1, x, x^2, ...
	PowerKindN PowerKind = iota
	// PowerKindTwoN produces 1, x^2, x^4, ...
	PowerKindTwoN
	// PowerKindTwoNPlusOne produces x, x^3, x^5, ...
	PowerKindTwoNPlusOne
)

// String returns the name used in logs
func (k PowerKind) String() string {
	switch k {
	case PowerKindN:
		return "n"
	case PowerKindTwoN:
		return "2n"
	case PowerKindTwoNPlusOne:
		return "2n+1"
	default:
		return "unknown"
	}
}

// PowerSequence yields the power belonging to the current term
type PowerSequence interface {
	Current() *apd.Decimal
	Advance()
}

// powerState is shared by the three sequence types
type powerState struct {
	c          *calc
	current    *apd.Decimal
	multiplier *apd.Decimal
}

func (s *powerState) Current() *apd.Decimal {
	return s.current
}

func (s *powerState) Advance() {
	s.current = s.c.mul(s.current, s.multiplier)
}

// Err returns the first arithmetic error of the sequence
func (s *powerState) Err() error {
	return s.c.err
}

// PowerN is the sequence x^n starting at x^0
type PowerN struct{ powerState }

// PowerTwoN is the sequence x^(2n) starting at x^0
type PowerTwoN struct{ powerState }

// PowerTwoNPlusOne is the sequence x^(2n+1) starting at x
type PowerTwoNPlusOne struct{ powerState }

// NewPowerSequence returns the sequence of the given kind for x, computed
// at working precision p
func NewPowerSequence(kind PowerKind, x *apd.Decimal, p PrecisionSpec) PowerSequence {
	return newPowerSequence(kind, x, newCalc("power", p))
}

func newPowerSequence(kind PowerKind, x *apd.Decimal, c *calc) PowerSequence {
	base := c.round(x)
	switch kind {
	case PowerKindTwoN:
		return &PowerTwoN{powerState{c: c, current: decimalOne(), multiplier: c.mul(base, base)}}
	case PowerKindTwoNPlusOne:
		return &PowerTwoNPlusOne{powerState{c: c, current: base, multiplier: c.mul(base, base)}}
	default:
		return &PowerN{powerState{c: c, current: decimalOne(), multiplier: base}}
	}
}
