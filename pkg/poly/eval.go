package poly

// Evaluate returns p(z) = Σ c[i]·z^i for i in 0..Degree.
func (p Polynomial) Evaluate(z complex128) complex128 {
	var sum complex128
	pow := complex(1, 0)
	for _, c := range p.coeffs() {
		sum += complex(c, 0) * pow
		pow *= z
	}
	return sum
}

// EvaluateDerivative returns p'(z) = Σ i·c[i]·z^(i-1) for i in 1..Degree.
// The constant term never contributes, whatever its value.
func (p Polynomial) EvaluateDerivative(z complex128) complex128 {
	c := p.coeffs()
	var sum complex128
	pow := complex(1, 0)
	for i := 1; i < len(c); i++ {
		sum += complex(float64(i)*c[i], 0) * pow
		pow *= z
	}
	return sum
}
