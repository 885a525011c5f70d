// Package factor turns a polynomial into its product of linear factors.
//
// # Overview
//
// [Factorizer.Factor] runs the Aberth solver, checks that every approximation
// passed the residual test, and snaps each root to an exact fraction. [Render]
// prints the result in factored form:
//
//	f, _ := factor.New().Factor(poly.New(2, 3, 1))
//	f.String() // "(x + 1)(x + 2)" or "(x + 2)(x + 1)"
//
// Root order follows the solver's slots and is not sorted.
//
// # Sign Convention
//
// A root r contributes the factor (x - r). Positive roots print as "(x - r)";
// zero and negative roots print as "(x + |r|)".
//
// # Complex Roots
//
// Roots whose imaginary part does not snap to zero are kept and printed with
// both parts, again negating each part's sign: the root 1 + 2i becomes
// "(x - 1 - 2i)" and -i becomes "(x + i)".
package factor
