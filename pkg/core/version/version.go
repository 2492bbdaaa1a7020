// ============================================================================
// bigmath - Arbitrary-precision function engine
// ============================================================================
//
// Package:     version
// Description: Central version management for the engine, the constant
//              store schema and the command line tool
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Component versions
const (
	// Engine is the version of the mathx function engine
	Engine = "0.3.0"

	// StoreSchema is the schema version of the constant store
	StoreSchema = "1.0.0"

	// CLI is the version of the bigmath command
	CLI = "0.3.0"
)

// Build information, set via -ldflags "-X"
var (
	Version   = "0.3.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "engine", "mathx":
		return Engine
	case "store", "conststore":
		return StoreSchema
	case "cli", "bigmath":
		return CLI
	default:
		return Version
	}
}

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Engine    string `json:"engine"`
}

// Info returns the build information of the running binary
func Info() BuildInfo {
	return BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Engine:    Engine,
	}
}

// String returns a one-line version string
func String() string {
	return fmt.Sprintf("bigmath %s (commit %s, built %s, %s)", Version, GitCommit, BuildDate, runtime.Version())
}
