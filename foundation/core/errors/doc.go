// Package errors provides the module scoped error constructors used by the
// bigmath packages.
//
// Package: errors
// Title: bigmath Error Standards
// Description: Thin constructors on top of foundation/core/error that fix the
//              code, module, operation and details for each failure kind of
//              the numeric engine and its infrastructure. Predicates walk the
//              wrap chain so callers can classify errors after fmt.Errorf.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation for error standardization
// - 2026-10-19 v0.2.0: Domain, precision, convergence and store constructors
//
// Usage:
//   if x.Sign() <= 0 {
//     return nil, errors.Domain("log", x, "argument must be positive")
//   }
//
//   if errors.IsDomain(err) {
//     // caller supplied an invalid argument
//   }
package errors
