// Package aberth finds all roots of a polynomial at once with Aberth's method.
//
// # Algorithm
//
// Aberth's method generalizes Newton's iteration to the whole root set. Each
// approximation z_k is corrected by
//
//	w_k = r_k / (1 - r_k·S_k),  r_k = P(z_k)/P'(z_k),  S_k = Σ_{j≠k} 1/(z_k - z_j)
//
// and updated as z_k ← z_k - w_k. The separation sum S_k pushes approximations
// away from each other so they settle on distinct roots.
//
// # Usage
//
//	s := aberth.New(aberth.WithSeed(42))
//	res, err := s.Solve(poly.New(2, 3, 1))
//	if err != nil {
//	    // one of DEGENERATE_DERIVATIVE, COINCIDENT_APPROXIMATIONS, DIVERGED
//	}
//	if !res.Converged {
//	    // residual check failed; retry with a fresh start
//	}
//
// # Behavior
//
// [Solver.Solve] draws a random start inside a square of the complex plane,
// then runs a fixed number of [Step] calls with no early exit. Every step
// reads one snapshot of the approximations and returns a new slice, so the
// result does not depend on the order in which roots are visited. After the
// loop each root's residual |P(z_k)| is checked against the tolerance.
//
// Arithmetic faults abort the solve with a structured error; no NaN ever
// reaches the caller.
package aberth
