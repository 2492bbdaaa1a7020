// File: calculators.go
// Title: Function Calculators
// Description: One Calculator per series family, each binding a SeriesSpec
//              with its own coefficient cache to the engine context.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package mathx

import "github.com/cockroachdb/apd/v3"

// Calculator evaluates one series family
type Calculator struct {
	spec   SeriesSpec
	engine *EngineContext
}

// Spec returns the series description of the calculator
func (c *Calculator) Spec() SeriesSpec {
	return c.spec
}

// Calculate evaluates the series at x, rounded to p
func (c *Calculator) Calculate(x *apd.Decimal, p PrecisionSpec) (*apd.Decimal, error) {
	return c.engine.Evaluate(x, p, c.spec)
}

func (c *Calculator) calculate(x *apd.Decimal, digits uint32) (*apd.Decimal, error) {
	return c.engine.series(c.spec, x, digits)
}

// Calculators groups the calculators of a context
type Calculators struct {
	Exp   *Calculator
	Sin   *Calculator
	Cos   *Calculator
	Sinh  *Calculator
	Cosh  *Calculator
	Asin  *Calculator
	Atanh *Calculator
}

var seriesShapes = map[Family]struct {
	power    PowerKind
	pairwise bool
}{
	FamilyExp:   {PowerKindN, false},
	FamilySin:   {PowerKindTwoNPlusOne, true},
	FamilyCos:   {PowerKindTwoN, true},
	FamilySinh:  {PowerKindTwoNPlusOne, true},
	FamilyCosh:  {PowerKindTwoN, true},
	FamilyAsin:  {PowerKindTwoNPlusOne, false},
	FamilyAtanh: {PowerKindTwoNPlusOne, true},
}

func newCalculator(e *EngineContext, family Family) *Calculator {
	shape := seriesShapes[family]
	return &Calculator{
		engine: e,
		spec: SeriesSpec{
			Name:         family,
			Coefficients: NewCoefficientCache(family, recurrenceFor(family)),
			Power:        shape.power,
			Pairwise:     shape.pairwise,
		},
	}
}

func newCalculators(e *EngineContext) *Calculators {
	return &Calculators{
		Exp:   newCalculator(e, FamilyExp),
		Sin:   newCalculator(e, FamilySin),
		Cos:   newCalculator(e, FamilyCos),
		Sinh:  newCalculator(e, FamilySinh),
		Cosh:  newCalculator(e, FamilyCosh),
		Asin:  newCalculator(e, FamilyAsin),
		Atanh: newCalculator(e, FamilyAtanh),
	}
}

// ByFamily returns the calculator of a family, nil for unknown names
func (c *Calculators) ByFamily(f Family) *Calculator {
	switch f {
	case FamilyExp:
		return c.Exp
	case FamilySin:
		return c.Sin
	case FamilyCos:
		return c.Cos
	case FamilySinh:
		return c.Sinh
	case FamilyCosh:
		return c.Cosh
	case FamilyAsin:
		return c.Asin
	case FamilyAtanh:
		return c.Atanh
	default:
		return nil
	}
}

func (c *Calculators) sizes() map[Family]int {
	sizes := make(map[Family]int, len(Families))
	for _, f := range Families {
		sizes[f] = c.ByFamily(f).spec.Coefficients.Len()
	}
	return sizes
}
