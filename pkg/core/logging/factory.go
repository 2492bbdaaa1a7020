// ============================================================================
// bigmath - Arbitrary-precision function engine
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from configuration
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	"github.com/msto63/bigmath/foundation/core/log"
	"github.com/msto63/bigmath/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: json, text, console or logfmt (default: json)
	Format string

	// Primary output (default: stderr)
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer

	EnableCaller bool
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// FromConfig builds a LoggerConfig from the [log] section
func FromConfig(serviceName string, cfg config.LogConfig) LoggerConfig {
	lc := DefaultLoggerConfig(serviceName)
	if cfg.Level != "" {
		lc.Level = cfg.Level
	}
	if cfg.Format != "" {
		lc.Format = cfg.Format
	}
	lc.EnableCaller = cfg.Caller
	return lc
}

// NewLogger creates a logger. Unknown level or format strings fall back to
// info and json.
func NewLogger(cfg LoggerConfig) *log.Logger {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.DefaultLevel()
	}
	format, err := log.ParseFormat(cfg.Format)
	if err != nil {
		format = log.FormatJSON
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return log.NewWithConfig(log.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.ServiceName,
		EnableCaller: cfg.EnableCaller,
	})
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *log.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

// NewCLILogger creates a console logger for command line tools. verbose
// lowers the level to debug regardless of the configured level.
func NewCLILogger(serviceName string, cfg config.LogConfig, verbose bool) *log.Logger {
	lc := FromConfig(serviceName, cfg)
	if cfg.Format == "" {
		lc.Format = "console"
	}
	if verbose {
		lc.Level = "debug"
	}
	return NewLogger(lc)
}

// KV converts key-value pairs to log.Fields. Non-string keys and a trailing
// key without value are skipped.
func KV(keysAndValues ...interface{}) log.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(log.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
