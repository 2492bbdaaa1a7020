// File: error_integration_test.go
// Title: Error Handling Integration Tests
// Description: Tests for error handling patterns across mathx, the error
//              constructors and the logger to ensure consistent behavior.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of error integration tests
// - 2026-10-19 v0.2.0: Engine error taxonomy

package integration

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/cockroachdb/apd/v3"

	bmerror "github.com/msto63/bigmath/foundation/core/error"
	"github.com/msto63/bigmath/foundation/core/errors"
	"github.com/msto63/bigmath/foundation/core/log"
	"github.com/msto63/bigmath/foundation/utils/mathx"
)

var p = mathx.Digits(20)

func dec(s string) *apd.Decimal {
	return mathx.MustParseDecimal(s)
}

// engineFailures lists one failing call per error category
func engineFailures(e *mathx.EngineContext) []struct {
	name      string
	call      func() error
	code      bmerror.Code
	operation string
} {
	wrap := func(_ *apd.Decimal, err error) error { return err }
	return []struct {
		name      string
		call      func() error
		code      bmerror.Code
		operation string
	}{
		{"log of zero", func() error { return wrap(e.Log(dec("0"), p)) }, bmerror.CodeDomainError, "log"},
		{"sqrt of negative", func() error { return wrap(e.Sqrt(dec("-1"), p)) }, bmerror.CodeDomainError, "sqrt"},
		{"asin out of range", func() error { return wrap(e.Asin(dec("1.5"), p)) }, bmerror.CodeDomainError, "asin"},
		{"gamma pole", func() error { return wrap(e.Gamma(dec("-3"), p)) }, bmerror.CodeDomainError, "gamma"},
		{"zero precision", func() error { return wrap(e.Exp(dec("1"), mathx.Digits(0))) }, bmerror.CodeInvalidPrecision, "exp"},
		{"reciprocal of zero", func() error { return wrap(e.Reciprocal(dec("0"), p)) }, bmerror.CodeDivisionByZero, "reciprocal"},
		{"exp overflow", func() error { return wrap(e.Exp(dec("1E+6"), p)) }, bmerror.CodeOverflow, "exp"},
	}
}

// TestEngineErrorFormats verifies engine failures use the structured error type
func TestEngineErrorFormats(t *testing.T) {
	e := mathx.NewEngineContext()

	for _, tc := range engineFailures(e) {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if err == nil {
				t.Fatal("expected error")
			}

			var bmErr *bmerror.Error
			if !stderrors.As(err, &bmErr) {
				t.Fatalf("Error should be *bmerror.Error, got %T", err)
			}
			if bmErr.Code() != tc.code {
				t.Errorf("Code() = %s, want %s", bmErr.Code(), tc.code)
			}
			if bmErr.Module() != errors.ModuleMathx {
				t.Errorf("Module() = %q, want %q", bmErr.Module(), errors.ModuleMathx)
			}
			if op := errors.Operation(err); op != tc.operation {
				t.Errorf("Operation() = %q, want %q", op, tc.operation)
			}
		})
	}
}

// TestErrorSeverityConsistency verifies that severity follows the code
func TestErrorSeverityConsistency(t *testing.T) {
	tests := []struct {
		name     string
		err      *bmerror.Error
		severity bmerror.Severity
	}{
		{"domain", errors.Domain("log", "-1", "negative argument"), bmerror.SeverityLow},
		{"precision", errors.InvalidPrecision("exp", 0), bmerror.SeverityLow},
		{"format", errors.Format(errors.ModuleMathx, "abc", "decimal"), bmerror.SeverityLow},
		{"config", errors.Config("engine.rounding", "x", "is not a rounding mode"), bmerror.SeverityMedium},
		{"store", errors.Store("save", stderrors.New("disk full")), bmerror.SeverityMedium},
		{"convergence", errors.NonConvergence("exp", 10), bmerror.SeverityHigh},
		{"internal", errors.Internal(errors.ModuleMathx, "quo", stderrors.New("boom")), bmerror.SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Severity(); got != tt.severity {
				t.Errorf("Severity() = %v, want %v", got, tt.severity)
			}
			if got := bmerror.GetSeverity(tt.err); got != bmerror.GetSeverityFromCode(tt.err.Code()) {
				t.Errorf("GetSeverity() = %v, want severity of code %s", got, tt.err.Code())
			}
		})
	}
}

// TestErrorWrappingAndUnwrapping verifies codes survive wrapping across layers
func TestErrorWrappingAndUnwrapping(t *testing.T) {
	_, err := mathx.NewEngineContext().Log(dec("-2"), p)
	if err == nil {
		t.Fatal("expected error")
	}

	wrapped := fmt.Errorf("evaluating table row: %w", err)
	if !errors.IsDomain(wrapped) {
		t.Error("IsDomain should see through fmt wrapping")
	}
	if !stderrors.Is(wrapped, bmerror.New("").WithCode(bmerror.CodeDomainError)) {
		t.Error("errors.Is should match a code sentinel")
	}

	rewrapped := bmerror.Wrap(wrapped, "command failed")
	if rewrapped.Code() != bmerror.CodeDomainError {
		t.Errorf("Wrap lost the code: %s", rewrapped.Code())
	}
	if errors.Operation(rewrapped) != "log" {
		t.Errorf("Wrap lost the operation: %q", errors.Operation(rewrapped))
	}
}

// TestNonConvergenceAcrossContexts verifies the cap is per context
func TestNonConvergenceAcrossContexts(t *testing.T) {
	capped := mathx.NewEngineContext(mathx.WithMaxTerms(3))
	free := mathx.NewEngineContext()

	if _, err := capped.Exp(dec("1"), mathx.Digits(40)); !errors.IsNonConvergence(err) {
		t.Errorf("capped Exp error = %v, want NON_CONVERGENCE", err)
	}
	if _, err := free.Exp(dec("1"), mathx.Digits(40)); err != nil {
		t.Errorf("uncapped Exp error = %v", err)
	}
}

// TestErrorLogging verifies engine errors keep their details in JSON logs
func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatJSON, Output: &buf})

	_, err := mathx.NewEngineContext().Acosh(dec("0.5"), p)
	if err == nil {
		t.Fatal("expected error")
	}
	logger.LogError(err)

	var entry map[string]interface{}
	if jsonErr := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); jsonErr != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), jsonErr)
	}
	details, ok := entry["error_details"].(map[string]interface{})
	if !ok {
		t.Fatalf("log entry has no error_details: %v", entry)
	}
	if details["code"] != string(bmerror.CodeDomainError) {
		t.Errorf("error_details.code = %v", details["code"])
	}
	if details["operation"] != "acosh" {
		t.Errorf("error_details.operation = %v", details["operation"])
	}
}
