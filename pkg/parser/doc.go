// Package parser turns a line of calculator input into a request.
//
// # Grammar
//
//	line    := [command] poly [ "at" value ]
//	command := factor | derive | d | derivative | diff | integrate | integral | int | eval | evaluate
//	poly    := [sign] term { sign term }
//	term    := coeff [ ["*"] "x" [ "^" int ] ] | "x" [ "^" int ]
//	coeff   := number [ "/" number ]
//	value   := [sign] coeff
//
// Whitespace is ignored and commands are case-insensitive. A line without a
// command factors the polynomial; a line ending in "at <value>" evaluates it.
// Like terms are summed, so "x + x" is 2x, and the resulting degree is that of
// the highest non-zero term.
//
// # Examples
//
//	x^2 + 3x + 2          factor
//	derive 1/2x^4 - x     derivative
//	int 3*x^2             integral
//	eval x^3 - 1 at -2    value at a point
package parser
