// Package mathx computes elementary and transcendental functions on
// arbitrary-precision decimals.
//
// Package: mathx
// Title: bigmath Precision-Adaptive Function Engine
// Description: exp, log, the trigonometric and hyperbolic functions with
//              their inverses, sqrt, n-th roots, pow, gamma and the constants
//              π, e, ln2 and ln10 on apd decimals, each correctly rounded to
//              a caller supplied PrecisionSpec. Series coefficients are exact
//              rationals held in append-only caches that concurrent calls
//              share without locking on the read path.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Business decimal type with currency helpers
// - 2026-10-19 v0.3.0: Rewritten as the transcendental function engine
//
// Every function takes its arguments and a PrecisionSpec and returns a new
// *apd.Decimal. Domain violations such as log(0) or asin(2) are reported
// before any work is done, as DOMAIN_ERROR errors from
// foundation/core/errors.
//
// State lives in an EngineContext. DefaultContext is shared by the
// package-level functions; NewEngineContext creates an independent one,
// optionally with its own logger, observer, iteration cap or persistent
// constant store.
//
// Usage:
//   p := mathx.MustPrecision(50, mathx.RoundingModeHalfEven)
//   root, err := mathx.Sqrt(mathx.MustParseDecimal("2"), p)
//
//   engine := mathx.NewEngineContext(mathx.WithMaxTerms(10000))
//   m := mathx.NewMath(engine, p)
//   s, err := m.Sin(mathx.MustParseDecimal("1e50"))
package mathx
