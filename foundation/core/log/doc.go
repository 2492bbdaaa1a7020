// Package log provides structured logging for bigmath.
//
// Package: log
// Title: bigmath Structured Logging
// Description: Leveled, structured logger with JSON, text, logfmt and
//              colored console output, persistent context fields and
//              operation timers. The numeric engine logs at debug level
//              only; the CLI and the constant store log at info.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-19 v0.2.0: Removed async/audit paths, console colors via lipgloss
//
// Usage:
//   logger := log.NewWithConfig(log.Config{
//     Level:  log.LevelDebug,
//     Format: log.FormatConsole,
//     Name:   "bigmath",
//   })
//
//   logger.Debug("series converged", log.Fields{"function": "exp", "terms": 42})
//
//   timer := logger.StartTimer("pi")
//   // ... compute
//   timer.Stop()
package log
