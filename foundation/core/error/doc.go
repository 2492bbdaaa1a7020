// Package error provides the structured error type used across bigmath.
//
// Package: error
// Title: bigmath Error Handling Framework
// Description: Structured errors with a machine readable code, a severity, the
//              operation that failed and free-form details. The engine raises
//              these synchronously before any computation starts, so a caller
//              either receives a rounded result or exactly one error.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-19 v0.2.0: Reduced code set to the numeric engine taxonomy, chain aware HasCode
//
// Usage:
//   import bmerror "github.com/msto63/bigmath/foundation/core/error"
//
//   err := bmerror.New("logarithm of non-positive value").
//     WithCode(bmerror.CodeDomainError).
//     WithOperation("log").
//     WithDetail("input", "-1")
//
//   if bmerror.HasCode(err, bmerror.CodeDomainError) {
//     // reject the input
//   }
package error
