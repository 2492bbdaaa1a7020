// File: decimal_test.go
// Title: Decimal Helper Tests
// Description: Tests for parsing and the structural decimal helpers such as
//              Exponent, Mantissa and the integral/fractional split.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial test implementation
// - 2026-10-19 v0.3.0: Tests for the apd based helpers

package mathx

import (
	"testing"

	bmerror "github.com/msto63/bigmath/foundation/core/error"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    string
	}{
		{"integer", "123", false, "123"},
		{"fraction", "-0.125", false, "-0.125"},
		{"exponent", "1E+50", false, "1E+50"},
		{"small exponent", "2e-7", false, "2E-7"},
		{"whitespace", "  42.5 ", false, "42.5"},
		{"empty", "", true, ""},
		{"garbage", "abc", true, ""},
		{"infinity", "Infinity", true, ""},
		{"nan", "NaN", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimal(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDecimal(%q) expected error", tt.input)
				}
				if !bmerror.HasCode(err, bmerror.CodeInvalidFormat) {
					t.Errorf("ParseDecimal(%q) error code = %v", tt.input, bmerror.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimal(%q) error = %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseDecimal(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestExponentAndMantissa(t *testing.T) {
	tests := []struct {
		input    string
		exponent int64
		mantissa string
	}{
		{"123.45", 2, "1.2345"},
		{"0.00123", -3, "1.23"},
		{"1", 0, "1"},
		{"-9.99E+20", 20, "-9.99"},
		{"0", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			x := dec(tt.input)
			if got := Exponent(x); got != tt.exponent {
				t.Errorf("Exponent(%s) = %d, want %d", tt.input, got, tt.exponent)
			}
			assertDecimal(t, "Mantissa("+tt.input+")", Mantissa(x), tt.mantissa)
		})
	}
}

func TestIntegralAndFractionalPart(t *testing.T) {
	tests := []struct {
		input      string
		integral   string
		fractional string
	}{
		{"12.75", "12", "0.75"},
		{"-12.75", "-12", "-0.75"},
		{"0.5", "0", "0.5"},
		{"42", "42", "0"},
		{"1E+3", "1000", "0"},
		{"123456789012345678901234567890.000001", "123456789012345678901234567890", "0.000001"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			x := dec(tt.input)
			assertDecimal(t, "IntegralPart", IntegralPart(x), tt.integral)
			assertDecimal(t, "FractionalPart", FractionalPart(x), tt.fractional)
		})
	}
}

func TestIntegerPredicates(t *testing.T) {
	tests := []struct {
		input  string
		isInt  bool
		isLong bool
	}{
		{"12", true, true},
		{"12.000", true, true},
		{"12.5", false, false},
		{"1E+30", true, false},
		{"-9223372036854775808", true, true},
		{"9223372036854775808", true, false},
		{"0", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			x := dec(tt.input)
			if got := IsIntValue(x); got != tt.isInt {
				t.Errorf("IsIntValue(%s) = %v, want %v", tt.input, got, tt.isInt)
			}
			if got := IsLongValue(x); got != tt.isLong {
				t.Errorf("IsLongValue(%s) = %v, want %v", tt.input, got, tt.isLong)
			}
		})
	}
}

func TestSignificantDigits(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1.2300", 3},
		{"100", 1},
		{"0.000120", 2},
		{"0", 0},
		{"-98765.4321", 9},
	}

	for _, tt := range tests {
		if got := SignificantDigits(dec(tt.input)); got != tt.want {
			t.Errorf("SignificantDigits(%s) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestRoundWithTrailingZeros(t *testing.T) {
	tests := []struct {
		input  string
		digits int
		want   string
	}{
		{"1", 5, "1.0000"},
		{"2.5", 3, "2.50"},
		{"3.14159", 3, "3.14"},
		{"-0.5", 4, "-0.5000"},
		{"123456", 3, "1.23E+5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := RoundWithTrailingZeros(dec(tt.input), digits(tt.digits))
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != tt.want {
				t.Errorf("RoundWithTrailingZeros(%s, %d) = %q, want %q", tt.input, tt.digits, got.String(), tt.want)
			}
		})
	}
}
