package aberth

import (
	stderrors "errors"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"sync"

	"github.com/matzehuels/polycalc/pkg/errors"
	"github.com/matzehuels/polycalc/pkg/poly"
)

// Solver runs Aberth iterations with a fixed budget. It is safe for
// concurrent use: the random source is shared under a lock and every Solve
// works on its own approximation slice.
type Solver struct {
	iterations int
	initRange  float64
	tolerance  float64

	mu  sync.Mutex
	rng *rand.Rand
}

// Result is the outcome of a completed solve.
type Result struct {
	// Roots holds one approximation per degree, in slot order.
	Roots []complex128

	// Residuals holds |P(z_k)| for each root.
	Residuals []float64

	// MaxResidual is the largest entry of Residuals.
	MaxResidual float64

	// Radii holds the inclusion radius of each root; see InclusionRadii.
	Radii []float64

	// Iterations is the number of steps that were run.
	Iterations int

	// Converged reports whether every root passed the residual check.
	Converged bool
}

// New creates a Solver with the given options applied over the defaults.
func New(opts ...Option) *Solver {
	s := &Solver{
		iterations: DefaultIterations,
		initRange:  DefaultInitRange,
		tolerance:  DefaultTolerance,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = defaultRand()
	}
	return s
}

// Iterations returns the configured iteration budget.
func (s *Solver) Iterations() int { return s.iterations }

// Tolerance returns the configured residual tolerance.
func (s *Solver) Tolerance() float64 { return s.tolerance }

// Initialize returns Degree() random approximations with real and imaginary
// parts drawn uniformly from [-initRange, initRange].
func (s *Solver) Initialize(p poly.Polynomial) []complex128 {
	n := p.Degree()
	z := make([]complex128, n)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range z {
		re := (2*s.rng.Float64() - 1) * s.initRange
		im := (2*s.rng.Float64() - 1) * s.initRange
		z[i] = complex(re, im)
	}
	return z
}

// Step performs one Aberth pass over every slot of z and returns the new
// approximations. All corrections are computed from z as given; z itself is
// not modified.
func Step(p poly.Polynomial, z []complex128) ([]complex128, error) {
	next := make([]complex128, len(z))
	for k, zk := range z {
		w, err := correction(p, z, k)
		if err != nil {
			return nil, err
		}
		nz := zk - w
		if !isFinite(nz) {
			return nil, errors.New(errors.ErrCodeDiverged, "approximation %d diverged from %v", k, zk)
		}
		next[k] = nz
	}
	return next, nil
}

// correction computes w_k for slot k.
func correction(p poly.Polynomial, z []complex128, k int) (complex128, error) {
	zk := z[k]

	pz := p.Evaluate(zk)
	if pz == 0 {
		return 0, nil
	}
	dz := p.EvaluateDerivative(zk)
	if dz == 0 {
		return 0, errors.New(errors.ErrCodeDegenerateDerivative, "derivative vanishes at approximation %d (%v)", k, zk)
	}
	ratio := pz / dz

	var sum complex128
	for j, zj := range z {
		if j == k {
			continue
		}
		diff := zk - zj
		if diff == 0 {
			return 0, errors.New(errors.ErrCodeCoincidentApproximations, "approximations %d and %d coincide at %v", k, j, zk)
		}
		sum += 1 / diff
	}

	return ratio / (1 - ratio*sum), nil
}

// Solve validates p, draws a random start and runs the full iteration
// budget. Step faults abort the solve. A solve that completes but fails the
// residual check is returned with Converged set to false and no error.
func (s *Solver) Solve(p poly.Polynomial) (*Result, error) {
	if !p.IsFinite() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "polynomial has non-finite coefficients")
	}
	if p.Degree() == 0 {
		return &Result{Roots: []complex128{}, Residuals: []float64{}, Radii: []float64{}, Converged: true}, nil
	}
	if p.Leading() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "leading coefficient of a degree %d polynomial is zero", p.Degree())
	}

	z := s.Initialize(p)
	for i := 0; i < s.iterations; i++ {
		next, err := Step(p, z)
		if err != nil {
			return nil, atIteration(err, i+1)
		}
		z = next
	}

	res := &Result{
		Roots:      z,
		Residuals:  make([]float64, len(z)),
		Iterations: s.iterations,
		Converged:  true,
	}
	for k, zk := range z {
		r := cmplx.Abs(p.Evaluate(zk))
		res.Residuals[k] = r
		res.MaxResidual = math.Max(res.MaxResidual, r)
		if r > s.tolerance*residualScale(p, zk) {
			res.Converged = false
		}
	}
	res.Radii = InclusionRadii(p, z)
	return res, nil
}

// epsilon is the float64 machine epsilon.
const epsilon = 0x1p-52

// InclusionRadii returns, for each approximation z_k, the radius
//
//	n·|P(z_k)| / |a_n·∏_{j≠k}(z_k − z_j)|
//
// of a disc around z_k. The union of the discs contains every root of p, and
// a connected group of m discs contains m roots. |P(z_k)| is raised by the
// rounding bound of its evaluation, so approximations of a multiple root get
// discs wide enough to overlap. Coincident approximations get +Inf.
func InclusionRadii(p poly.Polynomial, z []complex128) []float64 {
	n := float64(len(z))
	radii := make([]float64, len(z))
	for k, zk := range z {
		// Summed in log space; the product underflows for high degrees.
		logProd := math.Log(math.Abs(p.Leading()))
		for j, zj := range z {
			if j != k {
				logProd += math.Log(cmplx.Abs(zk - zj))
			}
		}
		bound := cmplx.Abs(p.Evaluate(zk)) + 2*n*epsilon*residualScale(p, zk)
		radii[k] = math.Exp(math.Log(n*bound) - logProd)
	}
	return radii
}

// residualScale returns max(1, Σ|c_i|·|z|^i), the magnitude P(z) can reach
// from rounding alone.
func residualScale(p poly.Polynomial, z complex128) float64 {
	abs := cmplx.Abs(z)
	var sum float64
	pow := 1.0
	for _, c := range p.Coefficients() {
		sum += math.Abs(c) * pow
		pow *= abs
	}
	return math.Max(1, sum)
}

// atIteration prefixes a step fault's message with the iteration number.
func atIteration(err error, n int) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		e.Message = fmt.Sprintf("iteration %d: %s", n, e.Message)
	}
	return err
}

func isFinite(z complex128) bool {
	return !cmplx.IsNaN(z) && !cmplx.IsInf(z)
}
