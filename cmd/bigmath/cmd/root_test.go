package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	bmerror "github.com/msto63/bigmath/foundation/core/error"
	"github.com/msto63/bigmath/foundation/core/errors"
	"github.com/msto63/bigmath/foundation/utils/mathx"
	"github.com/msto63/bigmath/pkg/core/metrics"
	"github.com/msto63/bigmath/pkg/core/version"
)

// testConfig writes a config that keeps the store inside a temp dir
func testConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "bigmath.toml")
	content := fmt.Sprintf(`
[engine]
default_precision = 20

[log]
level = "error"
format = "text"

[store]
path = %q

[metrics]
warm_interval = "50ms"
`, filepath.Join(dir, "constants.db"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, cfg string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := executeArgs(root, append([]string{"--config", cfg}, args...))
	return stdout.String(), stderr.String(), err
}

func TestEval(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"sin", []string{"eval", "sin", "0.5"}, "0.47942553860420300027"},
		{"precision flag", []string{"eval", "sqrt", "2", "-p", "10"}, "1.414213562"},
		{"binary", []string{"eval", "pow", "2", "10", "-p", "10"}, "1024"},
		{"rounding flag", []string{"eval", "sin", "-1", "-p", "4", "-r", "floor"}, "-0.8415"},
		{"case insensitive", []string{"eval", "EXP", "1", "-p", "10"}, "2.718281828"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCommand(t, cfg, tt.args...)
			if err != nil {
				t.Fatalf("eval error = %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("eval = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeNegativeNumbers(t *testing.T) {
	args := []string{"eval", "atan2", "-1", "-.5", "-p", "4", "--rounding", "floor", "-1E+3x", "--", "-2"}
	want := []string{"eval", "atan2", " -1", " -.5", "-p", "4", "--rounding", "floor", "-1E+3x", "--", "-2"}

	got := escapeNegativeNumbers(args)
	if len(got) != len(want) {
		t.Fatalf("escapeNegativeNumbers() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEval_NegativeArguments(t *testing.T) {
	cfg := testConfig(t)

	out, _, err := runCommand(t, cfg, "eval", "atan2", "-1", "-1", "-p", "10")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != "-2.356194490" {
		t.Errorf("atan2(-1, -1) = %q, want -2.356194490", got)
	}

	out, _, err = runCommand(t, cfg, "table", "exp", "-2", "-1", "1", "--plain", "-p", "5")
	if err != nil {
		t.Fatal(err)
	}
	if out != "-2\t0.13534\n-1\t0.36788\n" {
		t.Errorf("exp table = %q", out)
	}
}

func TestEval_Errors(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		name string
		args []string
		code bmerror.Code
	}{
		{"domain", []string{"eval", "log", "0"}, bmerror.CodeDomainError},
		{"unknown function", []string{"eval", "frobnicate", "1"}, bmerror.CodeInvalidInput},
		{"bad number", []string{"eval", "sin", "abc"}, bmerror.CodeInvalidFormat},
		{"wrong arity", []string{"eval", "pow", "2"}, bmerror.CodeInvalidInput},
		{"bad rounding", []string{"eval", "sin", "1", "-r", "sideways"}, bmerror.CodeConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCommand(t, cfg, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !bmerror.HasCode(err, tt.code) {
				t.Errorf("error code = %v, want %v (%v)", bmerror.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.Domain("log", "0", "logarithm of zero"))
	if !strings.HasPrefix(buf.String(), "error [DOMAIN_ERROR] log: ") {
		t.Errorf("printError() = %q", buf.String())
	}

	buf.Reset()
	printError(&buf, io.EOF)
	if buf.String() != "error: EOF\n" {
		t.Errorf("printError() = %q", buf.String())
	}
}

func TestEval_TrailingZeros(t *testing.T) {
	out, _, err := runCommand(t, testConfig(t), "eval", "exp", "0", "-p", "4", "--trailing-zeros")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != "1.000" {
		t.Errorf("eval = %q, want 1.000", got)
	}
}

func TestFunctions(t *testing.T) {
	out, _, err := runCommand(t, testConfig(t), "functions")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"sin", "pow", "gamma"} {
		if !strings.Contains(out, name) {
			t.Errorf("functions output missing %s", name)
		}
	}
}

func TestConst(t *testing.T) {
	cfg := testConfig(t)

	out, _, err := runCommand(t, cfg, "const", "pi")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != "3.1415926535897932385" {
		t.Errorf("const pi = %q", got)
	}

	out, _, err = runCommand(t, cfg, "const", "-p", "10")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(mathx.ConstantNames) {
		t.Fatalf("const printed %d lines, want %d", len(lines), len(mathx.ConstantNames))
	}
	if !strings.HasPrefix(lines[1], "e") || !strings.HasSuffix(lines[1], "2.718281828") {
		t.Errorf("const line = %q", lines[1])
	}

	if _, _, err := runCommand(t, cfg, "const", "tau"); err == nil {
		t.Error("const tau expected error")
	}
}

func TestTable(t *testing.T) {
	cfg := testConfig(t)

	out, _, err := runCommand(t, cfg, "table", "sin", "0.1", "0.3", "0.1", "-p", "10", "--plain", "-w", "2")
	if err != nil {
		t.Fatal(err)
	}
	want := "0.1\t0.09983341665\n0.2\t0.1986693308\n0.3\t0.2955202067\n"
	if out != want {
		t.Errorf("table output = %q, want %q", out, want)
	}

	out, _, err = runCommand(t, cfg, "table", "log", "-1", "1", "1", "-p", "5")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(out, "DOMAIN_ERROR") != 2 {
		t.Errorf("table output should mark two rows with DOMAIN_ERROR:\n%s", out)
	}
	if !strings.Contains(out, "log(x)") {
		t.Errorf("table output missing header:\n%s", out)
	}

	if _, _, err := runCommand(t, cfg, "table", "pow", "1", "2", "1"); !bmerror.HasCode(err, bmerror.CodeInvalidInput) {
		t.Errorf("binary table without --y error = %v", err)
	}
	out, _, err = runCommand(t, cfg, "table", "pow", "1", "3", "1", "--y", "2", "--plain")
	if err != nil {
		t.Fatal(err)
	}
	if out != "1\t1\n2\t4\n3\t9\n" {
		t.Errorf("pow table = %q", out)
	}
}

func TestTableArguments(t *testing.T) {
	d := mathx.MustParseDecimal

	xs, err := tableArguments(d("0"), d("1"), d("0.25"))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, x := range xs {
		got = append(got, x.String())
	}
	if strings.Join(got, " ") != "0 0.25 0.50 0.75 1.00" {
		t.Errorf("tableArguments() = %v", got)
	}

	if _, err := tableArguments(d("0"), d("1"), d("0")); err == nil {
		t.Error("zero step expected error")
	}
	if _, err := tableArguments(d("2"), d("1"), d("1")); err == nil {
		t.Error("from > to expected error")
	}
	if _, err := tableArguments(d("0"), d("1"), d("0.00001")); err == nil {
		t.Error("oversized table expected error")
	}
}

func TestWarmAndStore(t *testing.T) {
	cfg := testConfig(t)

	out, _, err := runCommand(t, cfg, "warm", "--constants", "pi,e", "-p", "50")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "pi") || !strings.Contains(out, "digits in") {
		t.Errorf("warm output = %q", out)
	}

	out, _, err = runCommand(t, cfg, "store", "list")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"pi", "e", "constant", "digits"} {
		if !strings.Contains(out, want) {
			t.Errorf("store list missing %q:\n%s", want, out)
		}
	}

	if _, _, err := runCommand(t, cfg, "store", "delete", "pi"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCommand(t, cfg, "store", "delete", "pi"); err == nil {
		t.Error("deleting a missing constant expected error")
	}
}

func TestVersion(t *testing.T) {
	out, _, err := runCommand(t, testConfig(t), "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var info version.BuildInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("version --json output %q: %v", out, err)
	}
	if info.Version != version.Version {
		t.Errorf("Version = %q, want %q", info.Version, version.Version)
	}
}

func TestServeMetrics(t *testing.T) {
	opts := &rootOptions{cfgFile: testConfig(t), precision: 15}
	cmd := &cobra.Command{}
	cmd.SetErr(io.Discard)

	reg := prometheus.NewRegistry()
	observer, err := metrics.NewObserver("bigmath", reg)
	if err != nil {
		t.Fatal(err)
	}
	s, err := opts.newSession(cmd, false, mathx.WithObserver(observer))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if err := registerCollectors(reg, s); err != nil {
		t.Fatal(err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveMetrics(ctx, s, reg, ln) }()

	url := "http://" + ln.Addr().String() + "/metrics"
	deadline := time.Now().Add(10 * time.Second)
	var body string
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			raw, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			body = string(raw)
			if strings.Contains(body, `bigmath_calls_total{function="sqrt"}`) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	for _, want := range []string{`bigmath_calls_total{function="sqrt"}`, "bigmath_build_info", "bigmath_cache_constant_digits", "go_goroutines"} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/healthz status = %d, body %s", resp.StatusCode, raw)
	}
	if !strings.Contains(string(raw), `"name":"engine"`) {
		t.Errorf("/healthz body missing engine check: %s", raw)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serveMetrics() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("serveMetrics did not stop")
	}
}
