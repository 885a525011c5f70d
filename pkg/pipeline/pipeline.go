// Package pipeline provides the request pipeline shared by the CLI, the REPL
// and the HTTP API.
//
// This package implements the complete parse → execute path so every entry
// point resolves commands, runs the root finder, and formats output the same
// way.
//
// # Architecture
//
// A request passes through two stages:
//
//  1. Parse: Turn a line of input into a parser.Request
//  2. Execute: Factor, differentiate, integrate, or evaluate the polynomial
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and run a line:
//
//	runner, err := pipeline.NewRunner(pipeline.Options{Seed: 42}, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Run(ctx, "x^2 + 3x + 2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output) // (x + 1)(x + 2)
//
// Run individual stages:
//
//	// Execute an already-parsed request
//	result, err := runner.Execute(ctx, parser.Request{Op: parser.OpDerive, Poly: p})
//
//	// Factor a polynomial built from coefficients
//	f, err := runner.Factor(ctx, poly.New(2, 3, 1))
package pipeline

import (
	"time"

	"github.com/matzehuels/polycalc/pkg/aberth"
	"github.com/matzehuels/polycalc/pkg/cache"
	"github.com/matzehuels/polycalc/pkg/errors"
	"github.com/matzehuels/polycalc/pkg/factor"
	"github.com/matzehuels/polycalc/pkg/parser"
	"github.com/matzehuels/polycalc/pkg/poly"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, REPL, and API
// =============================================================================

const (
	// DefaultIterations is the fixed Aberth iteration budget.
	DefaultIterations = aberth.DefaultIterations

	// DefaultInitRange bounds the random initial approximations.
	DefaultInitRange = aberth.DefaultInitRange

	// DefaultTolerance is the relative residual accepted after iterating.
	DefaultTolerance = aberth.DefaultTolerance

	// DefaultRootPrecision is the distance within which a root snaps to a
	// fraction.
	DefaultRootPrecision = factor.DefaultPrecision

	// DefaultMaxDegree bounds the exponents accepted from input.
	DefaultMaxDegree = parser.DefaultMaxDegree
)

// =============================================================================
// Options - Engine Configuration
// =============================================================================

// Options contains all configuration for the calculator pipeline.
// This struct supports JSON serialization for API responses.
type Options struct {
	Iterations    int     `json:"iterations,omitempty"`
	InitRange     float64 `json:"init_range,omitempty"`
	Tolerance     float64 `json:"tolerance,omitempty"`
	RootPrecision float64 `json:"root_precision,omitempty"`
	MaxDegree     int     `json:"max_degree,omitempty"`

	// Seed makes root finding reproducible. Zero selects a time-based seed.
	Seed int64 `json:"seed,omitempty"`

	// Cache stores factorizations keyed by coefficients and engine settings.
	// Nil disables caching.
	Cache cache.Cache `json:"-"`

	// CacheTTL bounds how long a cached factorization is reused. Zero keeps
	// entries until the cache evicts them.
	CacheTTL time.Duration `json:"cache_ttl,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// SetDefaults fills every zero-valued field with its default.
func (o *Options) SetDefaults() {
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.InitRange == 0 {
		o.InitRange = DefaultInitRange
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.RootPrecision == 0 {
		o.RootPrecision = DefaultRootPrecision
	}
	if o.MaxDegree == 0 {
		o.MaxDegree = DefaultMaxDegree
	}
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
}

// Validate rejects settings the engine cannot run with. Zero values are
// allowed because SetDefaults replaces them.
func (o *Options) Validate() error {
	if o.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "iterations must be non-negative, got %d", o.Iterations)
	}
	if o.InitRange < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "init_range must be positive, got %g", o.InitRange)
	}
	if o.Tolerance < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tolerance must be positive, got %g", o.Tolerance)
	}
	if o.RootPrecision < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "root_precision must be positive, got %g", o.RootPrecision)
	}
	if o.MaxDegree < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_degree must be non-negative, got %d", o.MaxDegree)
	}
	if o.CacheTTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache_ttl must be non-negative, got %s", o.CacheTTL)
	}
	return nil
}

// ValidateAndSetDefaults validates the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Validate(); err != nil {
		return err
	}
	o.SetDefaults()
	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outcome of one request.
type Result struct {
	// ID uniquely identifies the request in logs and API responses.
	ID string

	// Op is the operation that ran.
	Op parser.Op

	// Input is the line as entered, or a rendering of the request when it
	// was executed without one.
	Input string

	// Output is the text shown to the user.
	Output string

	// Polynomial is the derivative or integral for those operations and the
	// input polynomial otherwise.
	Polynomial poly.Polynomial

	// Factorization is set for factor requests.
	Factorization *factor.Factorization

	// Cached reports whether the factorization came from the cache.
	Cached bool

	// Value is set for eval requests.
	Value float64

	// Duration is the wall time spent executing.
	Duration time.Duration
}
