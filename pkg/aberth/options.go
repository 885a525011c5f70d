package aberth

import (
	"math/rand"
	"time"
)

const (
	// DefaultIterations is the fixed number of steps run by Solve.
	DefaultIterations = 100

	// DefaultInitRange bounds the random start: real and imaginary parts are
	// drawn uniformly from [-DefaultInitRange, DefaultInitRange].
	DefaultInitRange = 10.0

	// DefaultTolerance is the scaled residual below which a root counts as converged.
	DefaultTolerance = 1e-6
)

// Option configures a Solver.
type Option func(*Solver)

// WithIterations sets the iteration budget. Negative values are ignored.
func WithIterations(n int) Option {
	return func(s *Solver) {
		if n >= 0 {
			s.iterations = n
		}
	}
}

// WithInitRange sets the half-width of the square the start is drawn from.
// Non-positive values are ignored.
func WithInitRange(r float64) Option {
	return func(s *Solver) {
		if r > 0 {
			s.initRange = r
		}
	}
}

// WithTolerance sets the residual tolerance. Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(s *Solver) {
		if tol > 0 {
			s.tolerance = tol
		}
	}
}

// WithRand sets an explicit source for the random start. A nil source is ignored.
func WithRand(rng *rand.Rand) Option {
	return func(s *Solver) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithSeed seeds a new source with the given value. Two solvers built with the
// same seed and settings produce identical results.
func WithSeed(seed int64) Option {
	return func(s *Solver) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func defaultRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
