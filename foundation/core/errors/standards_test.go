package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	bmerror "github.com/msto63/bigmath/foundation/core/error"
)

func TestConstructorsSetCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *bmerror.Error
		code bmerror.Code
		op   string
	}{
		{"domain", Domain("log", "-1", "argument must be positive"), bmerror.CodeDomainError, "log"},
		{"precision", InvalidPrecision("exp", 0), bmerror.CodeInvalidPrecision, "exp"},
		{"division", DivisionByZero(ModuleRational, "quo"), bmerror.CodeDivisionByZero, "quo"},
		{"convergence", NonConvergence("sin", 5000), bmerror.CodeNonConvergence, "sin"},
		{"overflow", Overflow("exp", "1e30"), bmerror.CodeOverflow, "exp"},
		{"input", InvalidInput(ModuleMathx, "root", 0, "n >= 1"), bmerror.CodeInvalidInput, "root"},
		{"store", Store("load", fmt.Errorf("locked")), bmerror.CodeStoreError, "load"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code() != tt.code {
				t.Errorf("Code() = %v, want %v", tt.err.Code(), tt.code)
			}
			if tt.err.Operation() != tt.op {
				t.Errorf("Operation() = %q, want %q", tt.err.Operation(), tt.op)
			}
		})
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("atanh: %w", Domain("log", "0", "argument must be positive"))

	if !IsDomain(wrapped) {
		t.Error("IsDomain() = false on wrapped domain error")
	}
	if IsInvalidPrecision(wrapped) || IsNonConvergence(wrapped) || IsDivisionByZero(wrapped) {
		t.Error("predicate matched the wrong kind")
	}
	if got := Operation(wrapped); got != "log" {
		t.Errorf("Operation() = %q, want log", got)
	}
	if Operation(stderrors.New("plain")) != "" {
		t.Error("Operation() of plain error should be empty")
	}
}

func TestDomainDetails(t *testing.T) {
	err := Domain("asin", "1.5", "argument outside [-1, 1]")
	if err.Details()["input"] != "1.5" {
		t.Errorf("input detail = %v", err.Details()["input"])
	}
	if err.Module() != ModuleMathx {
		t.Errorf("Module() = %q", err.Module())
	}
	if err.Error() != "asin: argument outside [-1, 1]" {
		t.Errorf("Error() = %q", err.Error())
	}
}
