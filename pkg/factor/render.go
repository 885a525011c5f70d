package factor

import (
	"strings"

	"github.com/matzehuels/polycalc/pkg/rational"
)

// Root is an exact root with rational real and imaginary parts.
type Root struct {
	Re rational.Rational `json:"re"`
	Im rational.Rational `json:"im"`
}

// RealRoot returns a Root with no imaginary part.
func RealRoot(r rational.Rational) Root {
	return Root{Re: r}
}

// IsReal reports whether the imaginary part is zero.
func (r Root) IsReal() bool {
	return r.Im.IsZero()
}

// String formats the root as a number, e.g. "-3/2", "2i" or "1 - (1/2)i".
func (r Root) String() string {
	if r.IsReal() {
		return r.Re.String()
	}
	var b strings.Builder
	if !r.Re.IsZero() {
		b.WriteString(r.Re.String())
		if r.Im.IsNegative() {
			b.WriteString(" - ")
		} else {
			b.WriteString(" + ")
		}
		b.WriteString(imagMagnitude(r.Im.Abs()))
		return b.String()
	}
	if r.Im.IsNegative() {
		b.WriteString("-")
	}
	b.WriteString(imagMagnitude(r.Im.Abs()))
	return b.String()
}

// Render concatenates one linear factor per root in the order given.
// No roots renders as the empty string.
func Render(roots []Root) string {
	var b strings.Builder
	for _, r := range roots {
		writeFactor(&b, r)
	}
	return b.String()
}

func writeFactor(b *strings.Builder, r Root) {
	b.WriteString("(x")
	if r.IsReal() {
		b.WriteString(term(r.Re))
		b.WriteString(r.Re.Abs().String())
		b.WriteString(")")
		return
	}
	if !r.Re.IsZero() {
		b.WriteString(term(r.Re))
		b.WriteString(r.Re.Abs().String())
	}
	b.WriteString(term(r.Im))
	b.WriteString(imagMagnitude(r.Im.Abs()))
	b.WriteString(")")
}

// term returns the operator that subtracts v: " - " for positive v and
// " + " otherwise.
func term(v rational.Rational) string {
	if v.IsPositive() {
		return " - "
	}
	return " + "
}

// imagMagnitude formats a non-negative imaginary magnitude: "i", "3i", "(1/2)i".
func imagMagnitude(m rational.Rational) string {
	switch {
	case m.IsOne():
		return "i"
	case m.IsInt():
		return m.String() + "i"
	default:
		return "(" + m.String() + ")i"
	}
}
