package pipeline

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/polycalc/pkg/aberth"
	"github.com/matzehuels/polycalc/pkg/errors"
	"github.com/matzehuels/polycalc/pkg/factor"
	"github.com/matzehuels/polycalc/pkg/observability"
	"github.com/matzehuels/polycalc/pkg/parser"
	"github.com/matzehuels/polycalc/pkg/poly"
	"github.com/matzehuels/polycalc/pkg/rational"
)

// Runner encapsulates request execution.
// The CLI, REPL, and API all use it so they answer the same input the same way.
//
// The Runner keeps no per-request state. Multiple goroutines can safely use
// the same Runner; the solver's random source and the factorization cache are
// the only shared mutable state and both synchronize internally.
type Runner struct {
	Options Options
	Logger  *log.Logger

	parser     *parser.Parser
	solver     *aberth.Solver
	factorizer *factor.Factorizer
}

// NewRunner creates a runner with the given options.
// If logger is nil, log.Default() is used.
func NewRunner(opts Options, logger *log.Logger) (*Runner, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	solverOpts := []aberth.Option{
		aberth.WithIterations(opts.Iterations),
		aberth.WithInitRange(opts.InitRange),
		aberth.WithTolerance(opts.Tolerance),
	}
	if opts.Seed != 0 {
		solverOpts = append(solverOpts, aberth.WithSeed(opts.Seed))
	}
	solver := aberth.New(solverOpts...)

	return &Runner{
		Options: opts,
		Logger:  logger,
		parser:  parser.New(opts.MaxDegree),
		solver:  solver,
		factorizer: factor.New(
			factor.WithSolver(solver),
			factor.WithApproximator(rational.NewApproximator(rational.WithTolerance(opts.RootPrecision))),
		),
	}, nil
}

// Run parses a line and executes it.
func (r *Runner) Run(ctx context.Context, line string) (*Result, error) {
	req, err := r.Parse(ctx, line)
	if err != nil {
		return nil, err
	}
	return r.execute(ctx, line, req)
}

// Parse parses a line with the runner's degree limit.
func (r *Runner) Parse(ctx context.Context, line string) (parser.Request, error) {
	req, err := r.parser.Parse(line)
	degree := -1
	if err == nil {
		degree = req.Poly.Degree()
	}
	observability.Pipeline().OnParse(ctx, line, degree, err)
	if err != nil {
		return parser.Request{}, err
	}

	r.Logger.Debug("parsed input", "op", req.Op, "degree", degree)
	return req, nil
}

// Execute runs an already-parsed request.
func (r *Runner) Execute(ctx context.Context, req parser.Request) (*Result, error) {
	return r.execute(ctx, describe(req), req)
}

func (r *Runner) execute(ctx context.Context, input string, req parser.Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{
		ID:         uuid.NewString(),
		Op:         req.Op,
		Input:      input,
		Polynomial: req.Poly,
	}

	var err error
	switch req.Op {
	case parser.OpFactor:
		var f *factor.Factorization
		if f, result.Cached, err = r.factor(ctx, req.Poly); err == nil {
			result.Factorization = f
			result.Output = f.Display()
		}

	case parser.OpDerive:
		result.Polynomial = req.Poly.Derivative()
		result.Output = result.Polynomial.String()

	case parser.OpIntegrate:
		result.Polynomial = req.Poly.Integral()
		result.Output = result.Polynomial.String()

	case parser.OpEvaluate:
		if !req.Poly.IsFinite() {
			err = errors.New(errors.ErrCodeInvalidInput, "polynomial has non-finite coefficients")
			break
		}
		result.Value = real(req.Poly.Evaluate(complex(req.At, 0)))
		result.Output = FormatValue(result.Value)

	default:
		err = errors.New(errors.ErrCodeUnsupported, "unsupported operation %q", req.Op)
	}

	result.Duration = time.Since(start)
	observability.Pipeline().OnExecuteComplete(ctx, string(req.Op), result.Duration, err)
	if err != nil {
		r.Logger.Debug("request failed", "id", result.ID, "op", req.Op, "code", errors.GetCode(err))
		return nil, err
	}

	r.Logger.Debug("request complete",
		"id", result.ID,
		"op", req.Op,
		"duration", result.Duration)
	return result, nil
}

// Factor finds the exact factored form of p, reusing a cached result when
// the runner has one for the same coefficients and settings.
func (r *Runner) Factor(ctx context.Context, p poly.Polynomial) (*factor.Factorization, error) {
	f, _, err := r.factor(ctx, p)
	return f, err
}

func (r *Runner) factor(ctx context.Context, p poly.Polynomial) (*factor.Factorization, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	key := r.factorKey(p)
	if f, ok := r.loadFactorization(ctx, key); ok {
		r.Logger.Debug("factorization cache hit", "degree", p.Degree())
		return f, true, nil
	}

	degree := p.Degree()
	observability.Pipeline().OnSolveStart(ctx, degree)
	start := time.Now()

	f, err := r.factorizer.Factor(p)

	elapsed := time.Since(start)
	residual := 0.0
	if f != nil {
		residual = f.MaxResidual
	}
	observability.Pipeline().OnSolveComplete(ctx, degree, r.solver.Iterations(), residual, elapsed, err)
	if err != nil {
		return nil, false, err
	}

	r.Logger.Debug("solved",
		"degree", degree,
		"max_residual", residual,
		"duration", elapsed)
	r.storeFactorization(ctx, key, f)
	return f, false, nil
}

// FormatValue renders an evaluation result in the shortest form that parses
// back to the same float64.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// describe renders a request as a line of input.
func describe(req parser.Request) string {
	s := string(req.Op) + " " + req.Poly.String()
	if req.Op == parser.OpEvaluate {
		s += " at " + FormatValue(req.At)
	}
	return s
}
