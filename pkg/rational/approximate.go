package rational

import (
	"math"
	"math/big"

	"github.com/matzehuels/polycalc/pkg/errors"
)

const (
	// DefaultTolerance is the absolute distance within which a convergent is
	// accepted as the value of the input.
	DefaultTolerance = 1e-9

	// DefaultMaxDenominator bounds the denominators the expansion may reach.
	DefaultMaxDenominator = math.MaxInt32

	// maxRounds caps the re-approximation loop in Approximate.
	maxRounds = 64
)

// Approximator converts floats into the simplest nearby fraction.
// It holds no mutable state and is safe for concurrent use.
type Approximator struct {
	tolerance      float64
	maxDenominator *big.Int
}

// Option configures an Approximator.
type Option func(*Approximator)

// WithTolerance sets the absolute acceptance distance. Non-positive values
// leave the default in place.
func WithTolerance(tol float64) Option {
	return func(a *Approximator) {
		if tol > 0 && !math.IsInf(tol, 0) {
			a.tolerance = tol
		}
	}
}

// WithMaxDenominator bounds denominators. Values below 1 leave the default in place.
func WithMaxDenominator(n int64) Option {
	return func(a *Approximator) {
		if n >= 1 {
			a.maxDenominator = big.NewInt(n)
		}
	}
}

// NewApproximator creates an Approximator with the given options applied
// over the defaults.
func NewApproximator(opts ...Option) *Approximator {
	a := &Approximator{
		tolerance:      DefaultTolerance,
		maxDenominator: big.NewInt(DefaultMaxDenominator),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Tolerance returns the configured acceptance distance.
func (a *Approximator) Tolerance() float64 { return a.tolerance }

// Widen returns an Approximator with the same denominator bound and a
// tolerance of at least tol. a itself is returned when it is already wide
// enough.
func (a *Approximator) Widen(tol float64) *Approximator {
	if !(tol > a.tolerance) || math.IsInf(tol, 0) {
		return a
	}
	return &Approximator{tolerance: tol, maxDenominator: a.maxDenominator}
}

var defaultApproximator = NewApproximator()

// Approximate converts x using the default tolerance and denominator bound.
func Approximate(x float64) (Rational, error) {
	return defaultApproximator.Approximate(x)
}

// Approximate returns a continued-fraction convergent of x that lies within
// the tolerance. If the next convergent would exceed the denominator bound,
// the last admissible one is returned instead.
//
// The result r is a fixed point: Approximate(r.Float64()) returns r. When the
// float64 value of a convergent expands to a different convergent, the
// expansion is repeated from that value until it settles, so r can lie a few
// tolerances away from x.
func (a *Approximator) Approximate(x float64) (Rational, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Rational{}, errors.New(errors.ErrCodeNonRationalizable, "cannot rationalize non-finite value %v", x)
	}

	r := a.convergent(x)
	for i := 0; i < maxRounds; i++ {
		y := r.Float64()
		if y == x {
			break
		}
		x = y
		r = a.convergent(x)
	}
	return r, nil
}

// convergent expands the exact binary value of x and returns the first
// convergent within the tolerance.
func (a *Approximator) convergent(x float64) Rational {
	v := new(big.Rat).SetFloat64(x)
	tol := new(big.Rat).SetFloat64(a.tolerance)

	// h/k are the convergent numerator and denominator; the *Prev values
	// seed the recurrence as 1/0 and 0/1.
	h, hPrev := big.NewInt(1), big.NewInt(0)
	k, kPrev := big.NewInt(0), big.NewInt(1)

	p, q := new(big.Int).Set(v.Num()), new(big.Int).Set(v.Denom())
	for {
		// q > 0, so DivMod floors.
		term, rem := new(big.Int).DivMod(p, q, new(big.Int))

		hNext := new(big.Int).Add(new(big.Int).Mul(term, h), hPrev)
		kNext := new(big.Int).Add(new(big.Int).Mul(term, k), kPrev)
		if kNext.Cmp(a.maxDenominator) > 0 {
			break
		}
		hPrev, h = h, hNext
		kPrev, k = k, kNext

		if within(v, tol, h, k) || rem.Sign() == 0 {
			break
		}
		p, q = q, rem
	}

	// The first term always has denominator 1, so k > 0 here.
	return Rational{r: new(big.Rat).SetFrac(h, k)}
}

func within(v, tol *big.Rat, h, k *big.Int) bool {
	d := new(big.Rat).SetFrac(h, k)
	d.Sub(d, v)
	return d.Abs(d).Cmp(tol) <= 0
}

func errInvalidText(s string) error {
	return errors.New(errors.ErrCodeInvalidInput, "invalid rational %q", s)
}
