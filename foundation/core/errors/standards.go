// File: standards.go
// Title: Error Standards for bigmath
// Description: Standardized error constructors and predicates for the
//              numeric engine (mathx), configuration and constant store.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation for error standardization
// - 2026-10-19 v0.2.0: Engine taxonomy (domain, precision, convergence)

package errors

import (
	stderrors "errors"
	"fmt"

	bmerror "github.com/msto63/bigmath/foundation/core/error"
)

// Module identifiers for error categorization
const (
	ModuleMathx    = "mathx"
	ModuleRational = "rational"
	ModuleConfig   = "config"
	ModuleStore    = "conststore"
)

// Domain reports an argument outside the mathematical domain of op
func Domain(operation string, input interface{}, reason string) *bmerror.Error {
	return bmerror.New(fmt.Sprintf("%s: %s", operation, reason)).
		WithCode(bmerror.CodeDomainError).
		WithModule(ModuleMathx).
		WithOperation(operation).
		WithDetail("input", fmt.Sprint(input))
}

// InvalidPrecision reports a requested digit count the engine cannot serve
func InvalidPrecision(operation string, digits interface{}) *bmerror.Error {
	return bmerror.New(fmt.Sprintf("%s: unsupported precision of %v digits", operation, digits)).
		WithCode(bmerror.CodeInvalidPrecision).
		WithModule(ModuleMathx).
		WithOperation(operation).
		WithDetail("digits", digits)
}

// DivisionByZero reports a zero divisor in module.operation
func DivisionByZero(module, operation string) *bmerror.Error {
	return bmerror.New(fmt.Sprintf("%s: division by zero", operation)).
		WithCode(bmerror.CodeDivisionByZero).
		WithModule(module).
		WithOperation(operation)
}

// NonConvergence reports a series or iteration that exceeded its term limit
func NonConvergence(operation string, terms int) *bmerror.Error {
	return bmerror.New(fmt.Sprintf("%s: no convergence after %d terms", operation, terms)).
		WithCode(bmerror.CodeNonConvergence).
		WithModule(ModuleMathx).
		WithOperation(operation).
		WithDetail("terms", terms)
}

// Overflow reports a result that cannot be represented by the decimal type
func Overflow(operation string, input interface{}) *bmerror.Error {
	return bmerror.New(fmt.Sprintf("%s: result exceeds the decimal exponent range", operation)).
		WithCode(bmerror.CodeOverflow).
		WithModule(ModuleMathx).
		WithOperation(operation).
		WithDetail("input", fmt.Sprint(input))
}

// Format reports input that could not be parsed
func Format(module string, input interface{}, expectedFormat string) *bmerror.Error {
	return bmerror.New(fmt.Sprintf("invalid format in %s", module)).
		WithCode(bmerror.CodeInvalidFormat).
		WithModule(module).
		WithDetails(map[string]interface{}{
			"input":           fmt.Sprint(input),
			"expected_format": expectedFormat,
		})
}

// InvalidInput reports an argument that is well-formed but not acceptable
func InvalidInput(module, operation string, input interface{}, expected string) *bmerror.Error {
	return bmerror.New(fmt.Sprintf("invalid input for %s.%s", module, operation)).
		WithCode(bmerror.CodeInvalidInput).
		WithModule(module).
		WithOperation(operation).
		WithDetails(map[string]interface{}{
			"input":    fmt.Sprint(input),
			"expected": expected,
		})
}

// Config reports an invalid configuration value
func Config(field string, value interface{}, reason string) *bmerror.Error {
	return bmerror.New(fmt.Sprintf("config: %s %s", field, reason)).
		WithCode(bmerror.CodeConfigError).
		WithModule(ModuleConfig).
		WithDetails(map[string]interface{}{
			"field": field,
			"value": fmt.Sprint(value),
		})
}

// Store wraps a persistence failure of the constant store
func Store(operation string, cause error) *bmerror.Error {
	return bmerror.Wrap(cause, fmt.Sprintf("%s.%s failed", ModuleStore, operation)).
		WithCode(bmerror.CodeStoreError).
		WithModule(ModuleStore).
		WithOperation(operation)
}

// Internal wraps an unexpected failure of the decimal substrate
func Internal(module, operation string, cause error) *bmerror.Error {
	return bmerror.Wrap(cause, fmt.Sprintf("%s.%s failed", module, operation)).
		WithCode(bmerror.CodeInternal).
		WithModule(module).
		WithOperation(operation)
}

// IsDomain reports whether err is a domain error
func IsDomain(err error) bool {
	return bmerror.HasCode(err, bmerror.CodeDomainError)
}

// IsInvalidPrecision reports whether err is a precision error
func IsInvalidPrecision(err error) bool {
	return bmerror.HasCode(err, bmerror.CodeInvalidPrecision)
}

// IsDivisionByZero reports whether err is a division by zero
func IsDivisionByZero(err error) bool {
	return bmerror.HasCode(err, bmerror.CodeDivisionByZero)
}

// IsNonConvergence reports whether err is a convergence failure
func IsNonConvergence(err error) bool {
	return bmerror.HasCode(err, bmerror.CodeNonConvergence)
}

// Operation returns the failing operation recorded on err, if any
func Operation(err error) string {
	var e *bmerror.Error
	if stderrors.As(err, &e) {
		return e.Operation()
	}
	return ""
}
