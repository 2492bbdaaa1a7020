// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to pick the log level when an error is
//              reported. Caller mistakes are low, engine defects are high.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-19 v0.2.0: Mapping for the numeric engine codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a rejected input, e.g. log(-1)
	SeverityLow Severity = iota

	// SeverityMedium indicates a recoverable infrastructure problem
	SeverityMedium

	// SeverityHigh indicates a broken invariant inside the engine
	SeverityHigh

	// SeverityCritical indicates the process cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeDomainError, CodeInvalidPrecision, CodeDivisionByZero,
		CodeInvalidFormat, CodeInvalidInput, CodeOverflow:
		return SeverityLow
	case CodeConfigError, CodeStoreError:
		return SeverityMedium
	case CodeNonConvergence, CodeInternal:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
