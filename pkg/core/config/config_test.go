package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	bmerror "github.com/msto63/bigmath/foundation/core/error"
	"github.com/msto63/bigmath/foundation/utils/mathx"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{5 * time.Minute}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "5m0s" {
		t.Errorf("MarshalText() = %v, want 5m0s", string(result))
	}
}

func TestDefault(t *testing.T) {
	want := &Config{
		General: GeneralConfig{Name: "bigmath", Environment: "development", DataDir: "./data"},
		Engine: EngineConfig{
			DefaultPrecision: 50,
			Rounding:         "half_up",
			GuardDigits:      4,
			CacheMode:        "shared",
		},
		Log:     LogConfig{Level: "info", Format: "console"},
		Store:   StoreConfig{Path: filepath.Join("./data", "constants.db"), Timeout: Duration{5 * time.Second}},
		Metrics: MetricsConfig{Address: "127.0.0.1:9464", Namespace: "bigmath", WarmInterval: Duration{30 * time.Second}},
	}

	if diff := cmp.Diff(want, Default()); diff != "" {
		t.Errorf("Default() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_TOML(t *testing.T) {
	t.Setenv("BIGMATH_TEST_DIR", "/var/lib/bigmath")
	path := writeFile(t, "bigmath.toml", `
[general]
environment = "production"
data_dir = "$BIGMATH_TEST_DIR"

[engine]
default_precision = 120
rounding = "half_even"
max_terms = 5000
cache_mode = "isolated"

[log]
level = "debug"
format = "json"

[store]
enabled = true
timeout = "2s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		General: GeneralConfig{Name: "bigmath", Environment: "production", DataDir: "/var/lib/bigmath"},
		Engine: EngineConfig{
			DefaultPrecision: 120,
			Rounding:         "half_even",
			GuardDigits:      4,
			MaxTerms:         5000,
			CacheMode:        "isolated",
		},
		Log:     LogConfig{Level: "debug", Format: "json"},
		Store:   StoreConfig{Enabled: true, Path: "/var/lib/bigmath/constants.db", Timeout: Duration{2 * time.Second}},
		Metrics: MetricsConfig{Address: "127.0.0.1:9464", Namespace: "bigmath", WarmInterval: Duration{30 * time.Second}},
	}
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "bigmath.yaml", `
engine:
  default_precision: 30
  rounding: floor
metrics:
  enabled: true
  address: ":9100"
  warm_interval: 1m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine.DefaultPrecision != 30 {
		t.Errorf("Engine.DefaultPrecision = %d, want 30", cfg.Engine.DefaultPrecision)
	}
	if cfg.Engine.Rounding != "floor" {
		t.Errorf("Engine.Rounding = %q, want floor", cfg.Engine.Rounding)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Address != ":9100" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Metrics.WarmInterval.Duration != time.Minute {
		t.Errorf("Metrics.WarmInterval = %v, want 1m", cfg.Metrics.WarmInterval)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"broken toml", "bad.toml", "[engine\nrounding ="},
		{"broken yaml", "bad.yaml", "engine: [unclosed"},
		{"negative precision", "neg.toml", "[engine]\ndefault_precision = -3"},
		{"precision too large", "huge.toml", "[engine]\ndefault_precision = 1000000"},
		{"unknown rounding", "round.toml", "[engine]\nrounding = \"sideways\""},
		{"unknown cache mode", "cache.toml", "[engine]\ncache_mode = \"global\""},
		{"negative max terms", "terms.toml", "[engine]\nmax_terms = -1"},
		{"unknown log level", "level.toml", "[log]\nlevel = \"loud\""},
		{"unknown log format", "format.toml", "[log]\nformat = \"xml\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !bmerror.HasCode(err, bmerror.CodeConfigError) {
				t.Errorf("Load() error code = %v, want CONFIG_ERROR", bmerror.GetCode(err))
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		if !bmerror.HasCode(err, bmerror.CodeConfigError) {
			t.Errorf("Load() error = %v, want CONFIG_ERROR", err)
		}
	})
}

func TestLoadFromEnv(t *testing.T) {
	path := writeFile(t, "custom.toml", "[engine]\ndefault_precision = 77\n")
	t.Setenv(EnvConfigPath, path)

	if got := Find(); got != path {
		t.Errorf("Find() = %q, want %q", got, path)
	}
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Engine.DefaultPrecision != 77 {
		t.Errorf("Engine.DefaultPrecision = %d, want 77", cfg.Engine.DefaultPrecision)
	}
}

func TestPrecision(t *testing.T) {
	cfg := Default()
	cfg.Engine.DefaultPrecision = 25
	cfg.Engine.Rounding = "HALF-EVEN"

	p, err := cfg.Precision()
	if err != nil {
		t.Fatalf("Precision() error = %v", err)
	}
	want := mathx.PrecisionSpec{Digits: 25, Rounding: mathx.RoundingModeHalfEven}
	if p != want {
		t.Errorf("Precision() = %+v, want %+v", p, want)
	}

	cfg.Engine.DefaultPrecision = 0
	if _, err := cfg.Precision(); !bmerror.HasCode(err, bmerror.CodeConfigError) {
		t.Errorf("Precision() error = %v, want CONFIG_ERROR", err)
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := Default()
	cfg.Engine.GuardDigits = 7
	cfg.Engine.MaxTerms = 3

	opts, err := cfg.EngineOptions()
	if err != nil {
		t.Fatalf("EngineOptions() error = %v", err)
	}
	e := mathx.NewEngineContext(opts...)
	if e.GuardDigits() != 7 {
		t.Errorf("GuardDigits() = %d, want 7", e.GuardDigits())
	}
	if e.MaxTerms() != 3 {
		t.Errorf("MaxTerms() = %d, want 3", e.MaxTerms())
	}
	if got := e.Stats().CacheMode; got != "shared" {
		t.Errorf("Stats().CacheMode = %q, want shared", got)
	}

	cfg.Engine.CacheMode = "isolated"
	cfg.Engine.MaxTerms = 0
	opts, err = cfg.EngineOptions()
	if err != nil {
		t.Fatalf("EngineOptions() error = %v", err)
	}
	e = mathx.NewEngineContext(opts...)
	if e.MaxTerms() != 0 {
		t.Errorf("MaxTerms() = %d, want 0", e.MaxTerms())
	}
	if got := e.Stats().CacheMode; got != "isolated" {
		t.Errorf("Stats().CacheMode = %q, want isolated", got)
	}
}
