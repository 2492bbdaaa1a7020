// File: functions_test.go
// Title: Function Accuracy Tests
// Description: Reference values, domain errors, rounding modes, round trips,
//              monotonicity and concurrent evaluation of the public functions.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package mathx

import (
	"sync"
	"testing"

	"github.com/cockroachdb/apd/v3"

	bmerror "github.com/msto63/bigmath/foundation/core/error"
	"github.com/msto63/bigmath/foundation/core/errors"
)

func TestReferenceValues(t *testing.T) {
	e := NewEngineContext()
	p := digits(30)

	tests := []struct {
		name string
		fn   UnaryFunc
		x    string
		want string
	}{
		{"exp(1)", e.Exp, "1", "2.71828182845904523536028747135"},
		{"exp(-1)", e.Exp, "-1", "0.367879441171442321595523770161"},
		{"exp(0)", e.Exp, "0", "1"},
		{"log(2)", e.Log, "2", "0.693147180559945309417232121458"},
		{"log(10)", e.Log, "10", "2.30258509299404568401799145468"},
		{"log(1)", e.Log, "1", "0"},
		{"log10(1000)", e.Log10, "1000", "3"},
		{"log2(1024)", e.Log2, "1024", "10"},
		{"sin(1)", e.Sin, "1", "0.841470984807896506652502321630"},
		{"cos(1)", e.Cos, "1", "0.540302305868139717400936607443"},
		{"sin(0)", e.Sin, "0", "0"},
		{"cos(0)", e.Cos, "0", "1"},
		{"asin(0.5)", e.Asin, "0.5", "0.523598775598298873077107230547"},
		{"asin(1)", e.Asin, "1", "1.57079632679489661923132169164"},
		{"acos(0)", e.Acos, "0", "1.57079632679489661923132169164"},
		{"acos(1)", e.Acos, "1", "0"},
		{"atan(1)", e.Atan, "1", "0.785398163397448309615660845820"},
		{"atan(-1)", e.Atan, "-1", "-0.785398163397448309615660845820"},
		{"sinh(1)", e.Sinh, "1", "1.17520119364380145688238185060"},
		{"cosh(1)", e.Cosh, "1", "1.54308063481524377847790562076"},
		{"tanh(1)", e.Tanh, "1", "0.761594155955764888119458282605"},
		{"asinh(1)", e.Asinh, "1", "0.881373587019543025232609324980"},
		{"acosh(2)", e.Acosh, "2", "1.31695789692481670862504634731"},
		{"atanh(0.5)", e.Atanh, "0.5", "0.549306144334054845697622618461"},
		{"sqrt(2)", e.Sqrt, "2", "1.41421356237309504880168872421"},
		{"sqrt(16)", e.Sqrt, "16", "4"},
		{"gamma(5)", e.Gamma, "5", "24"},
		{"gamma(0.5)", e.Gamma, "0.5", "1.77245385090551602729816748334"},
		{"gamma(1.5)", e.Gamma, "1.5", "0.886226925452758013649083741671"},
		{"gamma(-0.5)", e.Gamma, "-0.5", "-3.54490770181103205459633496668"},
		{"factorial(3)", e.FactorialDecimal, "3", "6"},
		{"reciprocal(8)", e.Reciprocal, "8", "0.125"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(dec(tt.x), p)
			if err != nil {
				t.Fatalf("%s error = %v", tt.name, err)
			}
			assertDecimal(t, tt.name, got, tt.want)
		})
	}
}

func TestBinaryReferenceValues(t *testing.T) {
	e := NewEngineContext()
	p := digits(30)

	tests := []struct {
		name string
		fn   BinaryFunc
		x, y string
		want string
	}{
		{"pow(2, 10)", e.Pow, "2", "10", "1024"},
		{"pow(2, -2)", e.Pow, "2", "-2", "0.25"},
		{"pow(2, 0.5)", e.Pow, "2", "0.5", "1.41421356237309504880168872421"},
		{"pow(-2, 3)", e.Pow, "-2", "3", "-8"},
		{"pow(0, 5)", e.Pow, "0", "5", "0"},
		{"pow(7, 0)", e.Pow, "7", "0", "1"},
		{"root(27, 3)", e.Root, "27", "3", "3"},
		{"root(-8, 3)", e.Root, "-8", "3", "-2"},
		{"root(2, 2)", e.Root, "2", "2", "1.41421356237309504880168872421"},
		{"atan2(1, 1)", e.Atan2, "1", "1", "0.785398163397448309615660845820"},
		{"atan2(1, 0)", e.Atan2, "1", "0", "1.57079632679489661923132169164"},
		{"logbase(8, 2)", e.LogBase, "8", "2", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(dec(tt.x), dec(tt.y), p)
			if err != nil {
				t.Fatalf("%s error = %v", tt.name, err)
			}
			assertDecimal(t, tt.name, got, tt.want)
		})
	}
}

func TestSqrtFiftyDigits(t *testing.T) {
	got, err := Sqrt(dec("2"), digits(50))
	if err != nil {
		t.Fatal(err)
	}
	want := "1.4142135623730950488016887242096980785696718753769"
	if got.String() != want {
		t.Errorf("Sqrt(2) = %s, want %s", got, want)
	}
}

func TestLargeArguments(t *testing.T) {
	e := NewEngineContext()

	got, err := e.Exp(dec("1000"), digits(20))
	if err != nil {
		t.Fatal(err)
	}
	assertClose(t, "exp(1000)", got, dec("1.970071114017046993888879352243E+434"), 19)

	// sin(2π·10^6 + 1) = sin(1)
	pi, err := e.Pi(digits(60))
	if err != nil {
		t.Fatal(err)
	}
	x := must(exactAdd(must(exactMul(pi, apd.New(2000000, 0))), decimalOne()))
	got, err = e.Sin(x, digits(20))
	if err != nil {
		t.Fatal(err)
	}
	assertClose(t, "sin(2πk+1)", got, dec("0.84147098480789650665"), 19)

	got, err = e.Log(dec("1E+1000"), digits(20))
	if err != nil {
		t.Fatal(err)
	}
	assertDecimal(t, "log(1e1000)", got, "2302.5850929940456840")

	if _, err := e.Exp(dec("1E+6"), digits(20)); !bmerror.HasCode(err, bmerror.CodeOverflow) {
		t.Errorf("Exp(1e6) error = %v, want OVERFLOW", err)
	}
}

func TestExtremeArguments(t *testing.T) {
	e := NewEngineContext()
	floor := MustPrecision(20, RoundingModeFloor)
	ceiling := MustPrecision(20, RoundingModeCeiling)
	type unary func(*apd.Decimal, PrecisionSpec) (*apd.Decimal, error)

	tests := []struct {
		name string
		fn   unary
		x    string
		p    PrecisionSpec
		want string
	}{
		{"sin tiny", e.Sin, "1E-50001", digits(20), "1E-50001"},
		{"sin tiny floor", e.Sin, "1E-50001", floor, "9.9999999999999999999E-50002"},
		{"cos tiny", e.Cos, "1E-50001", digits(20), "1"},
		{"cos tiny floor", e.Cos, "1E-50001", floor, "0.99999999999999999999"},
		{"tan tiny ceiling", e.Tan, "1E-50001", ceiling, "1.0000000000000000001E-50001"},
		{"asin tiny ceiling", e.Asin, "1E-50001", ceiling, "1.0000000000000000001E-50001"},
		{"acos tiny", e.Acos, "1E-50001", digits(20), "1.5707963267948966192"},
		{"atan tiny", e.Atan, "1E-50001", digits(20), "1E-50001"},
		{"atan negative tiny floor", e.Atan, "-1E-50001", floor, "-1E-50001"},
		{"sinh tiny ceiling", e.Sinh, "1E-50001", ceiling, "1.0000000000000000001E-50001"},
		{"cosh tiny ceiling", e.Cosh, "1E-50001", ceiling, "1.0000000000000000001"},
		{"tanh tiny", e.Tanh, "1E-50001", digits(20), "1E-50001"},
		{"asinh tiny", e.Asinh, "1E-50001", digits(20), "1E-50001"},
		{"atanh tiny", e.Atanh, "1E-50001", digits(20), "1E-50001"},
		{"atan huge", e.Atan, "1E+60000", digits(20), "1.5707963267948966192"},
		{"atan negative huge", e.Atan, "-1E+60000", digits(20), "-1.5707963267948966192"},
		{"acot huge", e.Acot, "1E+60000", digits(20), "1E-60000"},
		{"acot negative huge", e.Acot, "-1E+60000", digits(20), "3.1415926535897932385"},
		{"asinh huge", e.Asinh, "1E+60000", digits(20), "138155.79872682330099"},
		{"acosh huge", e.Acosh, "1E+60000", digits(20), "138155.79872682330099"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(dec(tt.x), tt.p)
			if err != nil {
				t.Fatal(err)
			}
			assertDecimal(t, tt.name, got, tt.want)
		})
	}

	// 1/(3·10^45000) to 60000 digits reaches below 10^-100000
	if _, err := e.Reciprocal(dec("3E+45000"), digits(60000)); !bmerror.HasCode(err, bmerror.CodeOverflow) {
		t.Errorf("Reciprocal(3e45000) error = %v, want OVERFLOW", err)
	}
}

func TestDomainErrors(t *testing.T) {
	e := NewEngineContext()
	p := digits(20)

	tests := []struct {
		name string
		call func() (*apd.Decimal, error)
		code bmerror.Code
	}{
		{"log(0)", func() (*apd.Decimal, error) { return e.Log(dec("0"), p) }, bmerror.CodeDomainError},
		{"log(-1)", func() (*apd.Decimal, error) { return e.Log(dec("-1"), p) }, bmerror.CodeDomainError},
		{"log10(0)", func() (*apd.Decimal, error) { return e.Log10(dec("0"), p) }, bmerror.CodeDomainError},
		{"logbase(8, 1)", func() (*apd.Decimal, error) { return e.LogBase(dec("8"), dec("1"), p) }, bmerror.CodeDomainError},
		{"asin(1.5)", func() (*apd.Decimal, error) { return e.Asin(dec("1.5"), p) }, bmerror.CodeDomainError},
		{"acos(-2)", func() (*apd.Decimal, error) { return e.Acos(dec("-2"), p) }, bmerror.CodeDomainError},
		{"sqrt(-1)", func() (*apd.Decimal, error) { return e.Sqrt(dec("-1"), p) }, bmerror.CodeDomainError},
		{"root(-8, 2)", func() (*apd.Decimal, error) { return e.Root(dec("-8"), dec("2"), p) }, bmerror.CodeDomainError},
		{"root(8, 0)", func() (*apd.Decimal, error) { return e.Root(dec("8"), dec("0"), p) }, bmerror.CodeDomainError},
		{"pow(0, -1)", func() (*apd.Decimal, error) { return e.Pow(dec("0"), dec("-1"), p) }, bmerror.CodeDomainError},
		{"pow(-2, 0.5)", func() (*apd.Decimal, error) { return e.Pow(dec("-2"), dec("0.5"), p) }, bmerror.CodeDomainError},
		{"cot(0)", func() (*apd.Decimal, error) { return e.Cot(dec("0"), p) }, bmerror.CodeDomainError},
		{"coth(0)", func() (*apd.Decimal, error) { return e.Coth(dec("0"), p) }, bmerror.CodeDomainError},
		{"acosh(0.5)", func() (*apd.Decimal, error) { return e.Acosh(dec("0.5"), p) }, bmerror.CodeDomainError},
		{"atanh(1)", func() (*apd.Decimal, error) { return e.Atanh(dec("1"), p) }, bmerror.CodeDomainError},
		{"acoth(0.5)", func() (*apd.Decimal, error) { return e.Acoth(dec("0.5"), p) }, bmerror.CodeDomainError},
		{"atan2(0, 0)", func() (*apd.Decimal, error) { return e.Atan2(dec("0"), dec("0"), p) }, bmerror.CodeDomainError},
		{"gamma(-2)", func() (*apd.Decimal, error) { return e.Gamma(dec("-2"), p) }, bmerror.CodeDomainError},
		{"gamma(0)", func() (*apd.Decimal, error) { return e.Gamma(dec("0"), p) }, bmerror.CodeDomainError},
		{"reciprocal(0)", func() (*apd.Decimal, error) { return e.Reciprocal(dec("0"), p) }, bmerror.CodeDivisionByZero},
		{"precision 0", func() (*apd.Decimal, error) { return e.Sin(dec("1"), PrecisionSpec{}) }, bmerror.CodeInvalidPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.call()
			if err == nil {
				t.Fatalf("%s = %s, want error", tt.name, got)
			}
			if !bmerror.HasCode(err, tt.code) {
				t.Errorf("%s error code = %v, want %v", tt.name, bmerror.GetCode(err), tt.code)
			}
		})
	}

	_, err := e.Log(dec("-1"), p)
	if !errors.IsDomain(err) || errors.Operation(err) != "log" {
		t.Errorf("Log(-1) error = %v, operation %q", err, errors.Operation(err))
	}
}

func TestRoundingModes(t *testing.T) {
	e := NewEngineContext()

	tests := []struct {
		name   string
		mode   RoundingMode
		pi     string
		sin    string
		series string
	}{
		{"half up", RoundingModeHalfUp, "3.1416", "-0.8415", "2.7183"},
		{"half even", RoundingModeHalfEven, "3.1416", "-0.8415", "2.7183"},
		{"down", RoundingModeDown, "3.1415", "-0.8414", "2.7182"},
		{"up", RoundingModeUp, "3.1416", "-0.8415", "2.7183"},
		{"floor", RoundingModeFloor, "3.1415", "-0.8415", "2.7182"},
		{"ceiling", RoundingModeCeiling, "3.1416", "-0.8414", "2.7183"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MustPrecision(5, tt.mode)
			pi, err := e.Pi(p)
			if err != nil {
				t.Fatal(err)
			}
			assertDecimal(t, "pi", pi, tt.pi)

			s, err := e.Sin(dec("-1"), MustPrecision(4, tt.mode))
			if err != nil {
				t.Fatal(err)
			}
			assertDecimal(t, "sin(-1)", s, tt.sin)

			sum, err := e.Calculators().Exp.Calculate(dec("1"), p)
			if err != nil {
				t.Fatal(err)
			}
			assertDecimal(t, "exp series at 1", sum, tt.series)
		})
	}
}

func TestExpLogRoundTrip(t *testing.T) {
	e := NewEngineContext()
	p := digits(40)

	for _, input := range []string{"0.001", "1", "1000", "1E+50", "7.25", "0.999999"} {
		t.Run(input, func(t *testing.T) {
			x := dec(input)
			l, err := e.Log(x, p)
			if err != nil {
				t.Fatal(err)
			}
			back, err := e.Exp(l, p)
			if err != nil {
				t.Fatal(err)
			}
			assertClose(t, "exp(log(x))", back, x, 37)
		})
	}

	for _, input := range []string{"-20", "-0.5", "3", "150"} {
		t.Run("log(exp("+input+"))", func(t *testing.T) {
			x := dec(input)
			v, err := e.Exp(x, p)
			if err != nil {
				t.Fatal(err)
			}
			back, err := e.Log(v, p)
			if err != nil {
				t.Fatal(err)
			}
			assertClose(t, "log(exp(x))", back, x, 36)
		})
	}
}

func TestTrigIdentities(t *testing.T) {
	e := NewEngineContext()
	p := digits(35)

	for _, input := range []string{"0.1", "0.9", "2.5", "-4", "100"} {
		t.Run(input, func(t *testing.T) {
			x := dec(input)
			s, err := e.Sin(x, p)
			if err != nil {
				t.Fatal(err)
			}
			c, err := e.Cos(x, p)
			if err != nil {
				t.Fatal(err)
			}
			sum := must(exactAdd(must(exactMul(s, s)), must(exactMul(c, c))))
			assertClose(t, "sin²+cos²", sum, decimalOne(), 32)

			sh, err := e.Sinh(x, p)
			if err != nil {
				t.Fatal(err)
			}
			back, err := e.Asinh(sh, p)
			if err != nil {
				t.Fatal(err)
			}
			assertClose(t, "asinh(sinh(x))", back, x, 32)
		})
	}

	for _, input := range []string{"0.2", "0.75", "-0.9999"} {
		t.Run("asin "+input, func(t *testing.T) {
			x := dec(input)
			a, err := e.Asin(x, p)
			if err != nil {
				t.Fatal(err)
			}
			back, err := e.Sin(a, p)
			if err != nil {
				t.Fatal(err)
			}
			assertClose(t, "sin(asin(x))", back, x, 31)
		})
	}
}

func TestMonotonicity(t *testing.T) {
	e := NewEngineContext()
	p := digits(25)

	tests := []struct {
		name   string
		fn     UnaryFunc
		inputs []string
	}{
		{"exp", e.Exp, []string{"-3", "-0.5", "0", "0.0001", "0.5", "1", "1.0000001", "10"}},
		{"log", e.Log, []string{"0.01", "0.5", "0.999", "1", "1.001", "2", "9.99", "10", "11"}},
		{"sin", e.Sin, []string{"-1.5", "-0.7", "0", "0.3", "0.7853", "0.7854", "1.2", "1.5"}},
		{"atan", e.Atan, []string{"-100", "-1", "-0.5", "0", "0.5", "1", "1.0001", "100"}},
		{"sqrt", e.Sqrt, []string{"0", "0.01", "0.99", "1", "1.01", "2", "100"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prev *apd.Decimal
			for _, input := range tt.inputs {
				got, err := tt.fn(dec(input), p)
				if err != nil {
					t.Fatalf("%s(%s) error = %v", tt.name, input, err)
				}
				if prev != nil && got.Cmp(prev) <= 0 {
					t.Errorf("%s(%s) = %s is not above %s", tt.name, input, got, prev)
				}
				prev = got
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	warm := NewEngineContext()
	if _, err := warm.Sin(dec("0.5"), digits(300)); err != nil {
		t.Fatal(err)
	}

	for _, input := range []string{"0.5", "3", "-12.75"} {
		first, err := warm.Sin(dec(input), digits(40))
		if err != nil {
			t.Fatal(err)
		}
		second, err := warm.Sin(dec(input), digits(40))
		if err != nil {
			t.Fatal(err)
		}
		fresh, err := NewEngineContext().Sin(dec(input), digits(40))
		if err != nil {
			t.Fatal(err)
		}
		if first.String() != second.String() || first.String() != fresh.String() {
			t.Errorf("sin(%s): %s, %s, %s", input, first, second, fresh)
		}
	}
}

func TestPrecisionScaling(t *testing.T) {
	e := NewEngineContext()
	x := dec("0.7")

	high, err := e.Exp(x, digits(80))
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{5, 10, 20, 40, 60} {
		got, err := e.Exp(x, digits(n))
		if err != nil {
			t.Fatal(err)
		}
		if got.NumDigits() > int64(n) {
			t.Errorf("exp at %d digits has %d digits", n, got.NumDigits())
		}
		want := newCalc("test", digits(n)).round(high)
		if got.Cmp(want) != 0 {
			t.Errorf("exp at %d digits = %s, want %s", n, got, want)
		}
	}
}

func TestConcurrentEvaluation(t *testing.T) {
	inputs := []string{"0.1", "0.5", "1", "2", "3.5", "-7", "12.25", "100"}
	reference := make([]*apd.Decimal, len(inputs))
	serial := NewEngineContext()
	for i, input := range inputs {
		v, err := serial.Sin(dec(input), digits(60))
		if err != nil {
			t.Fatal(err)
		}
		reference[i] = v
	}

	shared := NewEngineContext()
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for j := range inputs {
				i := (g + j) % len(inputs)
				v, err := shared.Sin(dec(inputs[i]), digits(60))
				if err != nil {
					t.Errorf("Sin(%s) error = %v", inputs[i], err)
					return
				}
				if v.Cmp(reference[i]) != 0 {
					t.Errorf("Sin(%s) = %s, want %s", inputs[i], v, reference[i])
				}
			}
		}(g)
	}
	wg.Wait()
}

func TestFunctionRegistry(t *testing.T) {
	e := NewEngineContext()
	names := e.FunctionNames()
	if len(names) < 25 {
		t.Errorf("FunctionNames() = %v", names)
	}

	f, ok := e.Lookup(" SQRT ")
	if !ok || f.Arity != 1 {
		t.Fatalf("Lookup(sqrt) = %+v, %v", f, ok)
	}
	got, err := f.Call(digits(10), dec("9"))
	if err != nil {
		t.Fatal(err)
	}
	assertDecimal(t, "sqrt(9)", got, "3")

	pow, _ := e.Lookup("pow")
	if _, err := pow.Call(digits(10), dec("2")); !bmerror.HasCode(err, bmerror.CodeInvalidInput) {
		t.Errorf("pow with one argument error = %v", err)
	}
	if _, ok := e.Lookup("nope"); ok {
		t.Error("Lookup(nope) should fail")
	}
}

func TestMathFacade(t *testing.T) {
	m := NewMath(nil, digits(20))
	if m.Context() != DefaultContext() {
		t.Error("NewMath(nil) should use DefaultContext")
	}

	got, err := m.Pow(dec("3"), dec("4"))
	if err != nil {
		t.Fatal(err)
	}
	assertDecimal(t, "pow(3, 4)", got, "81")

	m5 := m.WithPrecision(digits(5))
	pi, err := m5.Pi()
	if err != nil {
		t.Fatal(err)
	}
	assertDecimal(t, "pi", pi, "3.1416")
	if m.Precision().Digits != 20 {
		t.Error("WithPrecision modified the original")
	}
}
