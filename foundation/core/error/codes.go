// File: codes.go
// Title: Error Code Definitions
// Description: Error codes of the bigmath engine and its supporting
//              infrastructure (configuration, constant store, CLI).
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Numeric engine taxonomy

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Numeric engine
	CodeDomainError      Code = "DOMAIN_ERROR"
	CodeInvalidPrecision Code = "INVALID_PRECISION"
	CodeDivisionByZero   Code = "DIVISION_BY_ZERO"
	CodeNonConvergence   Code = "NON_CONVERGENCE"
	CodeOverflow         Code = "OVERFLOW"
	CodeInvalidFormat    Code = "INVALID_FORMAT"

	// Infrastructure
	CodeConfigError Code = "CONFIG_ERROR"
	CodeStoreError  Code = "STORE_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeInvalidInput,
		CodeDomainError, CodeInvalidPrecision, CodeDivisionByZero, CodeNonConvergence,
		CodeOverflow, CodeInvalidFormat,
		CodeConfigError, CodeStoreError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeDomainError, CodeDivisionByZero, CodeOverflow:
		return "arithmetic"
	case CodeInvalidPrecision, CodeInvalidFormat, CodeInvalidInput:
		return "validation"
	case CodeNonConvergence, CodeInternal:
		return "engine"
	case CodeConfigError:
		return "configuration"
	case CodeStoreError:
		return "storage"
	default:
		return "generic"
	}
}

// ExitCode maps the code to a process exit status for the CLI
func (c Code) ExitCode() int {
	switch c.Category() {
	case "validation":
		return 2
	case "arithmetic":
		return 3
	case "configuration":
		return 4
	case "storage":
		return 5
	default:
		return 1
	}
}
