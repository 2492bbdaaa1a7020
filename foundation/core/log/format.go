// File: format.go
// Title: Log Output Formatters
// Description: JSON, text, console and logfmt formatters. Field order is
//              sorted in the text based formats so output is reproducible.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with four formats
// - 2026-10-19 v0.2.0: Sorted fields, lipgloss level styles for the console

package log

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Format represents the output format for log messages
type Format int

const (
	// FormatJSON outputs structured JSON logs
	FormatJSON Format = iota

	// FormatText outputs human-readable text logs
	FormatText

	// FormatConsole outputs colored text logs for terminals
	FormatConsole

	// FormatLogfmt outputs key=value pairs
	FormatLogfmt
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	case FormatConsole:
		return "console"
	case FormatLogfmt:
		return "logfmt"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a log format
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "console":
		return FormatConsole, nil
	case "logfmt":
		return FormatLogfmt, nil
	default:
		return FormatJSON, &ParseError{Input: format, Type: "format"}
	}
}

// Formatter defines the interface for log formatters
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// JSONFormatter formats log entries as JSON
type JSONFormatter struct {
	TimestampFormat string
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{TimestampFormat: time.RFC3339Nano}
}

// Format formats a log entry as JSON
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+6)

	for k, v := range entry.Fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		data[k] = v
	}

	data["timestamp"] = entry.Timestamp.Format(f.TimestampFormat)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message

	if entry.Logger != "" {
		data["logger"] = entry.Logger
	}
	if entry.ContextID != "" {
		data["context_id"] = entry.ContextID
	}
	if entry.Caller != nil {
		data["caller"] = fmt.Sprintf("%s:%d", entry.Caller.File, entry.Caller.Line)
	}

	if entry.Error != nil {
		data["error"] = entry.Error.Error()
		if m, ok := entry.Error.(json.Marshaler); ok {
			if raw, err := m.MarshalJSON(); err == nil {
				data["error_details"] = json.RawMessage(raw)
			}
		}
	}

	out, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// TextFormatter formats log entries as human-readable text
type TextFormatter struct {
	TimestampFormat  string
	DisableTimestamp bool
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{TimestampFormat: "15:04:05.000"}
}

// Format formats a log entry as text
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	return []byte(f.line(entry, entry.Level.ShortString()) + "\n"), nil
}

func (f *TextFormatter) line(entry *Entry, level string) string {
	var parts []string

	if !f.DisableTimestamp {
		parts = append(parts, entry.Timestamp.Format(f.TimestampFormat))
	}
	parts = append(parts, "["+level+"]")

	if entry.Logger != "" {
		parts = append(parts, "{"+entry.Logger+"}")
	}
	if entry.ContextID != "" {
		parts = append(parts, "(ctx="+shortID(entry.ContextID)+")")
	}

	parts = append(parts, entry.Message)

	if len(entry.Fields) > 0 {
		parts = append(parts, "["+strings.Join(sortedPairs(entry.Fields, "%s=%v"), " ")+"]")
	}
	if entry.Error != nil {
		parts = append(parts, fmt.Sprintf("error=%q", entry.Error.Error()))
	}

	return strings.Join(parts, " ")
}

// ConsoleFormatter formats log entries for terminals with a colored level tag
type ConsoleFormatter struct {
	*TextFormatter
	DisableColors bool
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{TextFormatter: NewTextFormatter()}
}

var levelStyles = map[Level]lipgloss.Style{
	LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
}

// Format formats a log entry for console output
func (f *ConsoleFormatter) Format(entry *Entry) ([]byte, error) {
	level := entry.Level.ShortString()
	if style, ok := levelStyles[entry.Level]; ok && !f.DisableColors {
		level = style.Render(level)
	}
	return []byte(f.line(entry, level) + "\n"), nil
}

// LogfmtFormatter formats log entries as logfmt key=value pairs
type LogfmtFormatter struct {
	TimestampFormat string
}

// NewLogfmtFormatter creates a new logfmt formatter
func NewLogfmtFormatter() *LogfmtFormatter {
	return &LogfmtFormatter{TimestampFormat: time.RFC3339}
}

// Format formats a log entry in logfmt format
func (f *LogfmtFormatter) Format(entry *Entry) ([]byte, error) {
	parts := []string{
		"timestamp=" + entry.Timestamp.Format(f.TimestampFormat),
		"level=" + entry.Level.String(),
		fmt.Sprintf("message=%q", entry.Message),
	}

	if entry.Logger != "" {
		parts = append(parts, "logger="+entry.Logger)
	}
	if entry.ContextID != "" {
		parts = append(parts, "context_id="+entry.ContextID)
	}

	for _, kv := range sortedKeys(entry.Fields) {
		v := entry.Fields[kv]
		if s, ok := v.(string); ok {
			parts = append(parts, fmt.Sprintf("%s=%q", kv, s))
		} else {
			parts = append(parts, fmt.Sprintf("%s=%v", kv, v))
		}
	}
	if entry.Error != nil {
		parts = append(parts, fmt.Sprintf("error=%q", entry.Error.Error()))
	}

	return []byte(strings.Join(parts, " ") + "\n"), nil
}

// GetFormatter returns a formatter for the specified format
func GetFormatter(format Format) Formatter {
	switch format {
	case FormatText:
		return NewTextFormatter()
	case FormatConsole:
		return NewConsoleFormatter()
	case FormatLogfmt:
		return NewLogfmtFormatter()
	default:
		return NewJSONFormatter()
	}
}

func sortedKeys(fields Fields) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedPairs(fields Fields, layout string) []string {
	keys := sortedKeys(fields)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf(layout, k, fields[k]))
	}
	return pairs
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
