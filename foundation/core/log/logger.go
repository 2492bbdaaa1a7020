// File: logger.go
// Title: Core Logger Implementation
// Description: Structured, leveled logger. Loggers are immutable after
//              construction: the With* methods return modified copies, so a
//              logger can be shared by concurrent engine calls.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-19 v0.2.0: Copy-on-write With* methods, context IDs, no async buffer

package log

import (
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	bmerror "github.com/msto63/bigmath/foundation/core/error"
)

// Logger represents a structured logger with contextual information
type Logger struct {
	level     Level
	formatter Formatter
	output    io.Writer
	name      string
	contextID string

	contextFields Fields
	enableCaller  bool

	// writeMu serializes writes to output; it is shared between copies
	writeMu *sync.Mutex
}

// Config represents logger configuration
type Config struct {
	Level        Level
	Format       Format
	Output       io.Writer
	Name         string
	EnableCaller bool
}

// New creates a new logger with default configuration
func New() *Logger {
	return NewWithConfig(Config{Level: DefaultLevel(), Format: FormatJSON})
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	output := config.Output
	if output == nil {
		output = os.Stderr
	}
	return &Logger{
		level:         config.Level,
		formatter:     GetFormatter(config.Format),
		output:        output,
		name:          config.Name,
		contextFields: make(Fields),
		enableCaller:  config.EnableCaller,
		writeMu:       &sync.Mutex{},
	}
}

// Discard returns a logger that drops every entry
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelError + 1, Output: io.Discard})
}

// WithLevel returns a copy with the given minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	clone := l.clone()
	clone.level = level
	return clone
}

// WithFormat returns a copy with the given output format
func (l *Logger) WithFormat(format Format) *Logger {
	clone := l.clone()
	clone.formatter = GetFormatter(format)
	return clone
}

// WithOutput returns a copy writing to output
func (l *Logger) WithOutput(output io.Writer) *Logger {
	clone := l.clone()
	clone.output = output
	clone.writeMu = &sync.Mutex{}
	return clone
}

// WithName returns a copy with the given logger name
func (l *Logger) WithName(name string) *Logger {
	clone := l.clone()
	clone.name = name
	return clone
}

// WithContextID returns a copy that tags every entry with id
func (l *Logger) WithContextID(id string) *Logger {
	clone := l.clone()
	clone.contextID = id
	return clone
}

// WithField returns a copy with a persistent field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	clone := l.clone()
	clone.contextFields[key] = value
	return clone
}

// WithFields returns a copy with persistent fields
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := l.clone()
	for k, v := range fields {
		clone.contextFields[k] = v
	}
	return clone
}

// Trace logs a trace level message
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, nil, fields...)
}

// Debug logs a debug level message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs an info level message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs a warning level message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs an error level message
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// ErrorWithErr logs an error with an error object
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

// WarnWithErr logs a warning with an error object
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, fields...)
}

// LogError logs err at a level derived from its severity
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	code := bmerror.GetCode(err)
	fields := Fields{"error_code": code.String()}

	switch bmerror.GetSeverity(err) {
	case bmerror.SeverityLow:
		l.log(LevelInfo, err.Error(), err, fields)
	case bmerror.SeverityMedium:
		l.log(LevelWarn, err.Error(), err, fields)
	default:
		l.log(LevelError, err.Error(), err, fields)
	}
}

// StartTimer creates and starts a new performance timer
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

// IsLevelEnabled returns true if the given level is enabled
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level.ShouldLog(l.level)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level {
	return l.level
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	if !level.ShouldLog(l.level) {
		return
	}

	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.ContextID = l.contextID
	entry.Error = err

	for k, v := range l.contextFields {
		entry.Fields[k] = v
	}
	for _, set := range fields {
		for k, v := range set {
			entry.Fields[k] = v
		}
	}

	if l.enableCaller {
		if function, file, line, ok := caller(); ok {
			entry.Caller = &CallerInfo{Function: function, File: file, Line: line}
		}
	}

	formatted, formatErr := l.formatter.Format(entry)
	if formatErr != nil {
		return
	}

	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	_, _ = l.output.Write(formatted)
}

// caller returns the first frame outside this package
func caller() (function, file string, line int, ok bool) {
	pcs := make([]uintptr, 8)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.Function, "foundation/core/log.") {
			function = frame.Function
			if idx := strings.LastIndex(function, "."); idx != -1 {
				function = function[idx+1:]
			}
			file = frame.File
			if idx := strings.LastIndex(file, "/"); idx != -1 {
				file = file[idx+1:]
			}
			return function, file, frame.Line, true
		}
		if !more {
			return "", "", 0, false
		}
	}
}

func (l *Logger) clone() *Logger {
	clone := *l
	clone.contextFields = make(Fields, len(l.contextFields))
	for k, v := range l.contextFields {
		clone.contextFields[k] = v
	}
	return &clone
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New()
)

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// Debug logs a debug message using the default logger
func Debug(message string, fields ...Fields) {
	GetDefault().log(LevelDebug, message, nil, fields...)
}

// Info logs an info message using the default logger
func Info(message string, fields ...Fields) {
	GetDefault().log(LevelInfo, message, nil, fields...)
}

// Warn logs a warning message using the default logger
func Warn(message string, fields ...Fields) {
	GetDefault().log(LevelWarn, message, nil, fields...)
}

// Error logs an error message using the default logger
func Error(message string, fields ...Fields) {
	GetDefault().log(LevelError, message, nil, fields...)
}
