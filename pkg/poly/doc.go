// Package poly provides the polynomial value shared by every polycalc operation.
//
// # Data Model
//
// A [Polynomial] is a dense coefficient vector indexed from low to high
// degree: coefficient i multiplies x^i, and the degree is len-1. Values are
// immutable; [New] copies its input and accessors return copies, so a
// Polynomial can be handed to concurrent readers freely.
//
// # Operations
//
//   - [Polynomial.Evaluate], [Polynomial.EvaluateDerivative]: evaluation at a complex point
//   - [Polynomial.Derivative], [Polynomial.Integral]: symbolic transforms returning new values
//   - [Polynomial.Trim]: drop zero high-order coefficients
//   - [Polynomial.String]: human-readable rendering, e.g. "x^2 - 1/2x + 3"
//
// Indefinite integrals remember their integration constant and render with a
// trailing " + c".
package poly
