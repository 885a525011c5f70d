package poly

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/polycalc/pkg/rational"
)

// String renders p from the highest to the lowest non-zero term, for example
// "-2x^3 + 1/2x - 4". Coefficients are shown as fractions where a simple one
// matches, and a coefficient of 1 is omitted on x terms. Integrals end in " + c".
func (p Polynomial) String() string {
	var b strings.Builder
	c := p.coeffs()

	first := true
	for exp := len(c) - 1; exp >= 0; exp-- {
		coef := c[exp]
		if coef == 0 {
			continue
		}
		switch {
		case first && coef < 0:
			b.WriteString("-")
		case !first && coef < 0:
			b.WriteString(" - ")
		case !first:
			b.WriteString(" + ")
		}
		first = false

		mag := math.Abs(coef)
		if mag != 1 || exp == 0 {
			b.WriteString(formatCoefficient(mag))
		}
		switch {
		case exp == 1:
			b.WriteString("x")
		case exp > 1:
			b.WriteString("x^")
			b.WriteString(strconv.Itoa(exp))
		}
	}

	if p.hasConstant {
		if first {
			return "c"
		}
		b.WriteString(" + c")
	}
	if first {
		return "0"
	}
	return b.String()
}

func formatCoefficient(v float64) string {
	r, err := rational.Approximate(v)
	// A tiny non-zero coefficient must not print as 0.
	if err != nil || r.IsZero() {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return r.String()
}
