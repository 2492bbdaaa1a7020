// ============================================================================
// bigmath - Arbitrary-precision function engine
// ============================================================================
//
// Package:     config
// Description: TOML/YAML configuration for the engine, logging, the
//              constant store and the metrics endpoint
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	bmerror "github.com/msto63/bigmath/foundation/core/error"
	"github.com/msto63/bigmath/foundation/core/errors"
	"github.com/msto63/bigmath/foundation/core/log"
	"github.com/msto63/bigmath/foundation/utils/mathx"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "BIGMATH_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Engine  EngineConfig  `toml:"engine" yaml:"engine"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Store   StoreConfig   `toml:"store" yaml:"store"`
	Metrics MetricsConfig `toml:"metrics" yaml:"metrics"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment"`
	DataDir     string `toml:"data_dir" yaml:"data_dir"`
}

// EngineConfig holds the defaults of the function engine
type EngineConfig struct {
	DefaultPrecision int    `toml:"default_precision" yaml:"default_precision"`
	Rounding         string `toml:"rounding" yaml:"rounding"`
	GuardDigits      int    `toml:"guard_digits" yaml:"guard_digits"`
	// MaxTerms caps series length; 0 means no cap
	MaxTerms  int    `toml:"max_terms" yaml:"max_terms"`
	CacheMode string `toml:"cache_mode" yaml:"cache_mode"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	Caller bool   `toml:"caller" yaml:"caller"`
}

// StoreConfig holds the persistent constant store settings
type StoreConfig struct {
	Enabled bool     `toml:"enabled" yaml:"enabled"`
	Path    string   `toml:"path" yaml:"path"`
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// MetricsConfig holds the prometheus endpoint settings
type MetricsConfig struct {
	Enabled      bool     `toml:"enabled" yaml:"enabled"`
	Address      string   `toml:"address" yaml:"address"`
	Namespace    string   `toml:"namespace" yaml:"namespace"`
	WarmInterval Duration `toml:"warm_interval" yaml:"warm_interval"`
}

// Duration is a wrapper for time.Duration that supports TOML and YAML
// unmarshaling
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file. The format follows the
// file extension; anything other than .yaml or .yml is read as TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Config("path", path, "does not exist")
		}
		return nil, bmerror.Wrap(err, "failed to read config").
			WithCode(bmerror.CodeConfigError).
			WithModule(errors.ModuleConfig).
			WithDetail("path", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return nil, bmerror.Wrap(err, "failed to parse config").
			WithCode(bmerror.CodeConfigError).
			WithModule(errors.ModuleConfig).
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths returns the locations LoadFromEnv tries in order
func SearchPaths() []string {
	paths := []string{
		"./configs/bigmath.toml",
		"./bigmath.toml",
		"./bigmath.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "bigmath", "config.toml"))
	}
	return paths
}

// Find returns the config file named by BIGMATH_CONFIG or the first existing
// search path, or "" when there is none
func Find() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadFromEnv loads the file Find reports and falls back to Default when no
// config file exists
func LoadFromEnv() (*Config, error) {
	path := Find()
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "bigmath"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}

	// Engine
	if c.Engine.DefaultPrecision == 0 {
		c.Engine.DefaultPrecision = 50
	}
	if c.Engine.Rounding == "" {
		c.Engine.Rounding = mathx.RoundingModeHalfUp.String()
	}
	if c.Engine.GuardDigits == 0 {
		c.Engine.GuardDigits = int(mathx.DefaultGuardDigits)
	}
	if c.Engine.CacheMode == "" {
		c.Engine.CacheMode = mathx.CacheModeShared.String()
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}

	// Store
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(c.General.DataDir, "constants.db")
	}
	if c.Store.Timeout.Duration == 0 {
		c.Store.Timeout.Duration = 5 * time.Second
	}

	// Metrics
	if c.Metrics.Address == "" {
		c.Metrics.Address = "127.0.0.1:9464"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "bigmath"
	}
	if c.Metrics.WarmInterval.Duration == 0 {
		c.Metrics.WarmInterval.Duration = 30 * time.Second
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.Store.Path = os.ExpandEnv(c.Store.Path)
}

// Validate reports the first invalid value as a CONFIG_ERROR
func (c *Config) Validate() error {
	if c.Engine.DefaultPrecision < 1 || c.Engine.DefaultPrecision > mathx.MaxDigits {
		return errors.Config("engine.default_precision", c.Engine.DefaultPrecision, fmt.Sprintf("must be between 1 and %d", mathx.MaxDigits))
	}
	if _, err := mathx.ParseRoundingMode(c.Engine.Rounding); err != nil {
		return errors.Config("engine.rounding", c.Engine.Rounding, "is not a rounding mode")
	}
	if c.Engine.GuardDigits < 0 {
		return errors.Config("engine.guard_digits", c.Engine.GuardDigits, "must not be negative")
	}
	if c.Engine.MaxTerms < 0 {
		return errors.Config("engine.max_terms", c.Engine.MaxTerms, "must not be negative")
	}
	if _, err := c.cacheMode(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Config("log.level", c.Log.Level, "is not a log level")
	}
	if _, err := log.ParseFormat(c.Log.Format); err != nil {
		return errors.Config("log.format", c.Log.Format, "is not a log format")
	}
	if c.Store.Enabled && c.Store.Path == "" {
		return errors.Config("store.path", c.Store.Path, "is required when the store is enabled")
	}
	return nil
}

func (c *Config) cacheMode() (mathx.CacheMode, error) {
	switch strings.ToLower(c.Engine.CacheMode) {
	case "", "shared":
		return mathx.CacheModeShared, nil
	case "isolated":
		return mathx.CacheModeIsolated, nil
	}
	return mathx.CacheModeShared, errors.Config("engine.cache_mode", c.Engine.CacheMode, "must be shared or isolated")
}

// Precision returns the default precision spec of the engine section
func (c *Config) Precision() (mathx.PrecisionSpec, error) {
	mode, err := mathx.ParseRoundingMode(c.Engine.Rounding)
	if err != nil {
		return mathx.PrecisionSpec{}, errors.Config("engine.rounding", c.Engine.Rounding, "is not a rounding mode")
	}
	p, err := mathx.NewPrecision(c.Engine.DefaultPrecision, mode)
	if err != nil {
		return mathx.PrecisionSpec{}, errors.Config("engine.default_precision", c.Engine.DefaultPrecision, fmt.Sprintf("must be between 1 and %d", mathx.MaxDigits))
	}
	return p, nil
}

// EngineOptions converts the engine section into context options. Logger,
// observer and store are wired by the caller.
func (c *Config) EngineOptions() ([]mathx.Option, error) {
	mode, err := c.cacheMode()
	if err != nil {
		return nil, err
	}
	if c.Engine.GuardDigits < 0 {
		return nil, errors.Config("engine.guard_digits", c.Engine.GuardDigits, "must not be negative")
	}
	opts := []mathx.Option{
		mathx.WithGuardDigits(uint32(c.Engine.GuardDigits)),
		mathx.WithCacheMode(mode),
	}
	if c.Engine.MaxTerms > 0 {
		opts = append(opts, mathx.WithMaxTerms(c.Engine.MaxTerms))
	}
	return opts, nil
}

// String returns a one-line summary used in startup logs
func (c *Config) String() string {
	return fmt.Sprintf("%s/%s precision=%d rounding=%s cache=%s store=%t metrics=%t",
		c.General.Name, c.General.Environment,
		c.Engine.DefaultPrecision, c.Engine.Rounding, c.Engine.CacheMode,
		c.Store.Enabled, c.Metrics.Enabled)
}
