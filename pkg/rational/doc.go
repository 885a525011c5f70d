// Package rational converts floating-point values into exact fractions.
//
// # Overview
//
// The root finder produces float64 approximations such as -0.9999999999999998.
// For display those are snapped to the simplest fraction consistent with a
// tolerance, here -1. The conversion walks the continued-fraction expansion
// of the input and returns the first convergent that is close enough.
//
// # Core Types
//
//   - [Rational]: an immutable fraction in lowest terms with a positive denominator
//   - [Approximator]: the tunable float → fraction converter
//
// # Usage
//
//	r, err := rational.Approximate(0.333333333333)
//	// r.String() == "1/3"
//
//	a := rational.NewApproximator(rational.WithTolerance(1e-6))
//	r, err = a.Approximate(1.4142135)
//	// r.String() == "1393/985"
//
// Non-finite inputs (NaN, ±Inf) are rejected with an
// errors.ErrCodeNonRationalizable error rather than mapped to a placeholder.
package rational
