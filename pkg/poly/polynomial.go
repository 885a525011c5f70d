package poly

import (
	"math"
	"slices"
)

// Polynomial is an immutable dense polynomial in x with real coefficients.
// The zero value is the constant 0.
type Polynomial struct {
	coefficients []float64
	hasConstant  bool
}

// New returns the polynomial with the given coefficients, lowest degree
// first. With no arguments it returns the constant 0.
func New(coefficients ...float64) Polynomial {
	if len(coefficients) == 0 {
		return Polynomial{coefficients: []float64{0}}
	}
	return Polynomial{coefficients: slices.Clone(coefficients)}
}

func (p Polynomial) coeffs() []float64 {
	if len(p.coefficients) == 0 {
		return []float64{0}
	}
	return p.coefficients
}

// Degree returns len(coefficients)-1. A zero leading coefficient still counts.
func (p Polynomial) Degree() int {
	return len(p.coeffs()) - 1
}

// Coefficients returns a copy of the coefficient vector.
func (p Polynomial) Coefficients() []float64 {
	return slices.Clone(p.coeffs())
}

// Coefficient returns the coefficient of x^i, or 0 when i is out of range.
func (p Polynomial) Coefficient(i int) float64 {
	c := p.coeffs()
	if i < 0 || i >= len(c) {
		return 0
	}
	return c[i]
}

// Leading returns the coefficient of x^Degree().
func (p Polynomial) Leading() float64 {
	c := p.coeffs()
	return c[len(c)-1]
}

// HasIntegrationConstant reports whether p came from Integral.
func (p Polynomial) HasIntegrationConstant() bool {
	return p.hasConstant
}

// IsZero reports whether every coefficient is zero.
func (p Polynomial) IsZero() bool {
	for _, c := range p.coeffs() {
		if c != 0 {
			return false
		}
	}
	return true
}

// IsFinite reports whether every coefficient is a finite number.
func (p Polynomial) IsFinite() bool {
	for _, c := range p.coeffs() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Equal reports whether p and q have identical coefficient vectors and
// integration-constant markers.
func (p Polynomial) Equal(q Polynomial) bool {
	return p.hasConstant == q.hasConstant && slices.Equal(p.coeffs(), q.coeffs())
}

// Trim drops zero coefficients above the highest non-zero one. The constant
// term is always kept.
func (p Polynomial) Trim() Polynomial {
	c := p.coeffs()
	n := len(c)
	for n > 1 && c[n-1] == 0 {
		n--
	}
	return Polynomial{coefficients: slices.Clone(c[:n]), hasConstant: p.hasConstant}
}

// Derivative returns dp/dx. The derivative of a constant is the constant 0.
func (p Polynomial) Derivative() Polynomial {
	c := p.coeffs()
	if len(c) == 1 {
		return New(0)
	}
	out := make([]float64, len(c)-1)
	for i := 1; i < len(c); i++ {
		out[i-1] = float64(i) * c[i]
	}
	return Polynomial{coefficients: out}
}

// Integral returns the antiderivative with a zero constant term and marks
// the result as carrying an unspecified integration constant.
func (p Polynomial) Integral() Polynomial {
	c := p.coeffs()
	out := make([]float64, len(c)+1)
	for i, v := range c {
		out[i+1] = v / float64(i+1)
	}
	return Polynomial{coefficients: out, hasConstant: true}
}
