// ============================================================================
// bigmath - Arbitrary-precision function engine
// ============================================================================
//
// Package:     health
// Description: Health checks for the engine, the constant cache and the
//              constant store, with an HTTP handler reporting them as JSON
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/msto63/bigmath/foundation/utils/mathx"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
	StatusUnknown   Status = "unknown"
)

// CheckResult represents the result of a health check
type CheckResult struct {
	Name      string                 `json:"name"`
	Status    Status                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Duration  time.Duration          `json:"duration"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Checker is an interface for health checks
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

// CheckFunc is a function type that implements Checker
type CheckFunc func(ctx context.Context) CheckResult

// Check implements the Checker interface
func (f CheckFunc) Check(ctx context.Context) CheckResult {
	return f(ctx)
}

// Name returns a default name
func (f CheckFunc) Name() string {
	return "unknown"
}

// NamedCheckFunc wraps a check function with a name
type NamedCheckFunc struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

// NewChecker creates a named checker from a function
func NewChecker(name string, fn func(ctx context.Context) CheckResult) Checker {
	return &NamedCheckFunc{name: name, fn: fn}
}

// Name returns the checker name
func (c *NamedCheckFunc) Name() string {
	return c.name
}

// Check runs the health check
func (c *NamedCheckFunc) Check(ctx context.Context) CheckResult {
	return c.fn(ctx)
}

// Registry manages multiple health checkers
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	service  string
	version  string
	startAt  time.Time
}

// NewRegistry creates a new health check registry
func NewRegistry(service, version string) *Registry {
	return &Registry{
		checkers: make(map[string]Checker),
		service:  service,
		version:  version,
		startAt:  time.Now(),
	}
}

// Register adds a checker to the registry
func (r *Registry) Register(checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[checker.Name()] = checker
}

// RegisterFunc adds a check function to the registry
func (r *Registry) RegisterFunc(name string, fn func(ctx context.Context) CheckResult) {
	r.Register(NewChecker(name, fn))
}

// Unregister removes a checker from the registry
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.checkers, name)
}

// Check runs all health checks concurrently and returns the overall status
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report := &Report{
		Service:   r.service,
		Version:   r.version,
		Uptime:    time.Since(r.startAt),
		Timestamp: time.Now(),
		Checks:    make([]CheckResult, 0, len(r.checkers)),
	}

	var wg sync.WaitGroup
	results := make(chan CheckResult, len(r.checkers))

	for _, checker := range r.checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()
			start := time.Now()
			result := c.Check(ctx)
			result.Duration = time.Since(start)
			result.Timestamp = time.Now()
			if result.Name == "" {
				result.Name = c.Name()
			}
			results <- result
		}(checker)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	overallStatus := StatusHealthy
	for result := range results {
		report.Checks = append(report.Checks, result)
		switch result.Status {
		case StatusUnhealthy:
			overallStatus = StatusUnhealthy
		case StatusDegraded:
			if overallStatus != StatusUnhealthy {
				overallStatus = StatusDegraded
			}
		}
	}

	report.Status = overallStatus
	return report
}

// CheckWithTimeout runs all health checks with a timeout
func (r *Registry) CheckWithTimeout(timeout time.Duration) *Report {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return r.Check(ctx)
}

// Report represents the overall health report
type Report struct {
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	Status    Status        `json:"status"`
	Uptime    time.Duration `json:"uptime"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// String returns a string representation of the report
func (r *Report) String() string {
	return fmt.Sprintf("Service: %s, Status: %s, Uptime: %v, Checks: %d",
		r.Service, r.Status, r.Uptime, len(r.Checks))
}

// Handler serves the report as JSON; unhealthy reports get status 503
func Handler(r *Registry, timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()
		report := r.Check(ctx)

		w.Header().Set("Content-Type", "application/json")
		if report.Status == StatusUnhealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(report)
	})
}

// Engine checks

// sqrt2 holds √2 to 30 significant digits
const sqrt2 = "1.41421356237309504880168872421"

// EngineCheck evaluates √2 at 30 digits and compares it with a known value.
// A correct result slower than budget reports degraded.
func EngineCheck(name string, engine *mathx.EngineContext, budget time.Duration) Checker {
	want := mathx.MustParseDecimal(sqrt2)
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{
			Name:    name,
			Status:  StatusHealthy,
			Details: map[string]interface{}{"context": engine.ID()},
		}

		start := time.Now()
		got, err := engine.Sqrt(mathx.MustParseDecimal("2"), mathx.Digits(30))
		elapsed := time.Since(start)
		switch {
		case err != nil:
			result.Status = StatusUnhealthy
			result.Message = err.Error()
		case got.Cmp(want) != 0:
			result.Status = StatusUnhealthy
			result.Message = fmt.Sprintf("sqrt(2) = %s, want %s", got, want)
		case budget > 0 && elapsed > budget:
			result.Status = StatusDegraded
			result.Message = fmt.Sprintf("sqrt(2) took %v, budget %v", elapsed, budget)
		default:
			result.Message = "sqrt(2) verified"
		}
		return result
	})
}

// ConstantCheck reports degraded while a constant is cached below digits
func ConstantCheck(name string, engine *mathx.EngineContext, constant string, digits uint32) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		cached := engine.Stats().Constants[constant]
		result := CheckResult{
			Name:    name,
			Status:  StatusHealthy,
			Message: fmt.Sprintf("%s cached to %d digits", constant, cached),
			Details: map[string]interface{}{"constant": constant, "cached": cached, "wanted": digits},
		}
		if cached < digits {
			result.Status = StatusDegraded
		}
		return result
	})
}

// StoreCheck loads the constants of store within the check's context
func StoreCheck(name string, store mathx.ConstantStore) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{Name: name, Status: StatusHealthy}
		constants, err := store.LoadConstants(ctx)
		if err != nil {
			result.Status = StatusUnhealthy
			result.Message = err.Error()
			return result
		}
		result.Message = fmt.Sprintf("%d constants stored", len(constants))
		result.Details = map[string]interface{}{"constants": len(constants)}
		return result
	})
}

// AlwaysHealthy returns a checker that always reports healthy
func AlwaysHealthy(name string) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		return CheckResult{
			Name:    name,
			Status:  StatusHealthy,
			Message: "Always healthy",
		}
	})
}
