package factor

import (
	"math"
	"math/cmplx"

	"github.com/matzehuels/polycalc/pkg/aberth"
	"github.com/matzehuels/polycalc/pkg/errors"
	"github.com/matzehuels/polycalc/pkg/poly"
	"github.com/matzehuels/polycalc/pkg/rational"
)

// DefaultPrecision is the distance within which a simple root snaps to a
// fraction. Approximations of a multiple root are snapped together with a
// tolerance taken from their spread; see Factor.
const DefaultPrecision = 1e-6

// Factorization is a polynomial split into its leading coefficient and roots.
type Factorization struct {
	// Leading is the rationalized leading coefficient.
	Leading rational.Rational

	// Roots holds one exact root per degree, in solver slot order. Slots
	// that approximate the same multiple root hold equal values.
	Roots []Root

	// Approximations holds the converged complex values before rationalization.
	Approximations []complex128

	// MaxResidual is the largest |P(z)| over the approximations.
	MaxResidual float64
}

// String renders the roots as linear factors; see Render.
func (f *Factorization) String() string {
	return Render(f.Roots)
}

// Display renders the factored form with the leading coefficient in front
// when it is not 1, e.g. "2(x + 1)(x + 2)" or "-(x - 3)". A constant
// polynomial displays as its value.
func (f *Factorization) Display() string {
	factors := Render(f.Roots)
	if len(f.Roots) == 0 {
		return f.Leading.String()
	}
	switch {
	case f.Leading.IsOne():
		return factors
	case f.Leading.Neg().IsOne():
		return "-" + factors
	default:
		return f.Leading.String() + factors
	}
}

// Factorizer combines a root solver with a rationalizer.
type Factorizer struct {
	solver *aberth.Solver
	approx *rational.Approximator
}

// Option configures a Factorizer.
type Option func(*Factorizer)

// WithSolver sets the root solver.
func WithSolver(s *aberth.Solver) Option {
	return func(f *Factorizer) {
		if s != nil {
			f.solver = s
		}
	}
}

// WithApproximator sets the rationalizer used for roots.
func WithApproximator(a *rational.Approximator) Option {
	return func(f *Factorizer) {
		if a != nil {
			f.approx = a
		}
	}
}

// New returns a Factorizer with a default solver and a rationalizer at
// DefaultPrecision unless overridden.
func New(opts ...Option) *Factorizer {
	f := &Factorizer{}
	for _, opt := range opts {
		opt(f)
	}
	if f.solver == nil {
		f.solver = aberth.New()
	}
	if f.approx == nil {
		f.approx = rational.NewApproximator(rational.WithTolerance(DefaultPrecision))
	}
	return f
}

// Factor finds and rationalizes every root of p. Either the whole
// factorization succeeds or an *errors.Error describes why it did not; no
// partial result is returned.
//
// A root of multiplicity m is only found to about the m-th root of machine
// precision, scattered around the true value. Such approximations are grouped
// by their inclusion discs, and each group snaps its centroid with a
// tolerance of twice its spread.
func (f *Factorizer) Factor(p poly.Polynomial) (*Factorization, error) {
	leading, err := rational.Approximate(p.Leading())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid leading coefficient")
	}

	res, err := f.solver.Solve(p)
	if err != nil {
		return nil, err
	}
	if !res.Converged {
		return nil, errors.New(errors.ErrCodeUnconverged,
			"roots did not converge after %d iterations (max residual %.3g)", res.Iterations, res.MaxResidual)
	}

	roots := make([]Root, len(res.Roots))
	for _, group := range clusters(res.Roots, res.Radii) {
		center, spread := centroid(res.Roots, group)
		approx := f.approx
		if len(group) > 1 {
			approx = approx.Widen(2 * spread)
		}

		re, err := approx.Approximate(real(center))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNonRationalizable, err, "root %d", group[0])
		}
		im, err := approx.Approximate(imag(center))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNonRationalizable, err, "root %d", group[0])
		}
		for _, k := range group {
			roots[k] = Root{Re: re, Im: im}
		}
	}

	return &Factorization{
		Leading:        leading,
		Roots:          roots,
		Approximations: res.Roots,
		MaxResidual:    res.MaxResidual,
	}, nil
}

// clusters partitions the slots of z into groups that approximate one root.
// Two slots join when their distance is within twice the smaller radius. A
// slot left alone joins the first other slot its own disc covers, which picks
// up stragglers of a multiple root that converged more slowly. Groups are
// ordered by their first slot.
func clusters(z []complex128, radii []float64) [][]int {
	parent := make([]int, len(z))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			i = parent[i]
		}
		return i
	}

	for i := range z {
		for j := i + 1; j < len(z); j++ {
			if cmplx.Abs(z[i]-z[j]) <= 2*math.Min(radii[i], radii[j]) {
				parent[find(i)] = find(j)
			}
		}
	}

	size := make([]int, len(z))
	for k := range z {
		size[find(k)]++
	}
	var alone []int
	for k := range z {
		if size[find(k)] == 1 {
			alone = append(alone, k)
		}
	}
	for _, k := range alone {
		for j := range z {
			if j != k && cmplx.Abs(z[k]-z[j]) <= radii[k] {
				parent[find(k)] = find(j)
				break
			}
		}
	}

	index := make(map[int]int)
	var groups [][]int
	for k := range z {
		root := find(k)
		i, ok := index[root]
		if !ok {
			i = len(groups)
			index[root] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], k)
	}
	return groups
}

// centroid returns the mean of the group's approximations and the largest
// distance from it.
func centroid(z []complex128, group []int) (complex128, float64) {
	var sum complex128
	for _, k := range group {
		sum += z[k]
	}
	center := sum / complex(float64(len(group)), 0)

	var spread float64
	for _, k := range group {
		spread = math.Max(spread, cmplx.Abs(z[k]-center))
	}
	return center, spread
}
