// File: context.go
// Title: Engine Context
// Description: EngineContext owns everything a computation shares between
//              calls: coefficient caches, constants, factorials, the logger
//              and the observer. Callers choose between the process-wide
//              DefaultContext and fresh contexts from NewEngineContext.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: OVERFLOW for results below the exponent range

package mathx

import (
	"context"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"github.com/msto63/bigmath/foundation/core/errors"
	"github.com/msto63/bigmath/foundation/core/log"
)

// DefaultGuardDigits is the number of digits carried beyond the requested
// precision while a series is summed
const DefaultGuardDigits uint32 = 4

// CacheMode selects whether calls share coefficient caches
type CacheMode int

const (
	// CacheModeShared reuses the context's caches for every call
	CacheModeShared CacheMode = iota
	// CacheModeIsolated evaluates every public call against fresh caches
	CacheModeIsolated
)

// String returns the config name of the mode
func (m CacheMode) String() string {
	if m == CacheModeIsolated {
		return "isolated"
	}
	return "shared"
}

// Observer receives timing information from the engine. Implementations
// must be safe for concurrent use.
type Observer interface {
	ObserveSeries(function string, terms int, digits uint32, d time.Duration)
	ObserveCall(function string, d time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveSeries(string, int, uint32, time.Duration) {}
func (nopObserver) ObserveCall(string, time.Duration, error)         {}

// StoredConstant is a persisted constant value
type StoredConstant struct {
	Name   string
	Digits uint32
	Value  string
}

// ConstantStore persists constants between processes
type ConstantStore interface {
	LoadConstants(ctx context.Context) ([]StoredConstant, error)
	SaveConstant(ctx context.Context, c StoredConstant) error
}

// Option configures an EngineContext
type Option func(*EngineContext)

// WithGuardDigits sets the digits carried beyond the requested precision
func WithGuardDigits(n uint32) Option {
	return func(e *EngineContext) {
		e.guardDigits = n
	}
}

// WithMaxTerms caps the number of series terms and Newton steps. Zero
// means no cap; a capped evaluation that does not converge returns a
// NON_CONVERGENCE error.
func WithMaxTerms(n int) Option {
	return func(e *EngineContext) {
		if n < 0 {
			n = 0
		}
		e.maxTerms = n
	}
}

// WithLogger sets the logger; the engine only logs at debug level
func WithLogger(logger *log.Logger) Option {
	return func(e *EngineContext) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver sets the observer receiving series and call timings
func WithObserver(o Observer) Option {
	return func(e *EngineContext) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithConstantStore seeds the constant cache from store and persists
// recomputed constants to it
func WithConstantStore(store ConstantStore) Option {
	return func(e *EngineContext) {
		e.store = store
	}
}

// WithCacheMode selects shared or isolated coefficient caches
func WithCacheMode(mode CacheMode) Option {
	return func(e *EngineContext) {
		e.cacheMode = mode
	}
}

// EngineContext is safe for concurrent use
type EngineContext struct {
	id          string
	guardDigits uint32
	maxTerms    int
	cacheMode   CacheMode

	logger   *log.Logger
	observer Observer
	store    ConstantStore

	calculators *Calculators
	constants   *ConstantCache
	factorials  *appendOnlyCache[*big.Int]
	bernoulli   *appendOnlyCache[*Rational]
	spouge      *spougeCache

	calls  atomic.Int64
	failed atomic.Int64
}

// NewEngineContext creates a context with empty caches
func NewEngineContext(opts ...Option) *EngineContext {
	e := &EngineContext{
		id:          uuid.NewString(),
		guardDigits: DefaultGuardDigits,
		observer:    nopObserver{},
		factorials:  newAppendOnlyCache(factorialRecurrence),
		bernoulli:   newAppendOnlyCache(bernoulliRecurrence),
		spouge:      newSpougeCache(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.GetDefault().WithName("mathx")
	}
	e.logger = e.logger.WithContextID(e.id)

	e.calculators = newCalculators(e)
	e.constants = newConstantCache(e)
	if e.store != nil {
		e.constants.seed(e.store)
	}

	e.logger.Debug("engine context created", log.Fields{
		"guard_digits": e.guardDigits,
		"max_terms":    e.maxTerms,
		"cache_mode":   e.cacheMode.String(),
	})
	return e
}

var (
	defaultOnce    sync.Once
	defaultContext *EngineContext
)

// DefaultContext returns the process-wide shared context
func DefaultContext() *EngineContext {
	defaultOnce.Do(func() {
		defaultContext = NewEngineContext()
	})
	return defaultContext
}

// ID returns the unique identifier of the context
func (e *EngineContext) ID() string {
	return e.id
}

// GuardDigits returns the series guard digits
func (e *EngineContext) GuardDigits() uint32 {
	return e.guardDigits
}

// MaxTerms returns the iteration cap, 0 when uncapped
func (e *EngineContext) MaxTerms() int {
	return e.maxTerms
}

// Calculators returns the shared calculators of the context
func (e *EngineContext) Calculators() *Calculators {
	return e.calculators
}

// calcs returns the calculators a single call evaluates against
func (e *EngineContext) calcs() *Calculators {
	if e.cacheMode == CacheModeIsolated {
		return newCalculators(e)
	}
	return e.calculators
}

// Stats describes the state of the caches of a context
type Stats struct {
	ID           string
	CacheMode    string
	Coefficients map[Family]int
	Constants    map[string]uint32
	Factorials   int
	Calls        int64
	Failures     int64
}

// Stats returns a snapshot of cache sizes and call counters
func (e *EngineContext) Stats() Stats {
	return Stats{
		ID:           e.id,
		CacheMode:    e.cacheMode.String(),
		Coefficients: e.calculators.sizes(),
		Constants:    e.constants.digits(),
		Factorials:   e.factorials.size(),
		Calls:        e.calls.Load(),
		Failures:     e.failed.Load(),
	}
}

// call validates p, runs fn and rounds its result to p. Every public
// function goes through here so observation and final rounding happen in
// one place.
func (e *EngineContext) call(op string, p PrecisionSpec, fn func() (*apd.Decimal, error)) (*apd.Decimal, error) {
	start := time.Now()
	e.calls.Add(1)

	result, err := e.evaluateCall(op, p, fn)
	if err != nil {
		e.failed.Add(1)
		e.logger.Debug("call failed", log.Fields{"function": op, "digits": p.Digits, "error": err.Error()})
	}
	e.observer.ObserveCall(op, time.Since(start), err)
	return result, err
}

func (e *EngineContext) evaluateCall(op string, p PrecisionSpec, fn func() (*apd.Decimal, error)) (*apd.Decimal, error) {
	if err := p.Validate(op); err != nil {
		return nil, err
	}
	v, err := fn()
	if err != nil {
		return nil, err
	}
	c := newCalc(op, p)
	result := c.round(v)
	if c.err != nil {
		return nil, c.err
	}
	if !result.IsZero() && result.Exponent == apd.MinExponent && result.NumDigits() < int64(p.Digits) {
		return nil, errors.Overflow(op, "result needs digits below 10^-100000")
	}
	return result, nil
}

// work returns the half-even spec used for intermediate results
func work(digits uint32) PrecisionSpec {
	return PrecisionSpec{Digits: digits, Rounding: RoundingModeHalfEven}
}
