// Package pkg provides the core libraries for the polycalc polynomial
// calculator.
//
// # Overview
//
// Polycalc finds every root of a polynomial with the Aberth method, snaps the
// roots to exact fractions, and prints the polynomial as a product of linear
// factors. It also differentiates, integrates, and evaluates polynomials. The
// pkg directory is organized into three areas:
//
//  1. Engine - [poly], [aberth], [rational], [factor]
//  2. Input - [parser]
//  3. Orchestration and infrastructure - [pipeline], [cache], [config],
//     [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow for a factor request:
//
//	"2x^2 - 1/2"
//	     ↓
//	[parser] package (line → operation + coefficients)
//	     ↓
//	[aberth] package (complex root approximations)
//	     ↓
//	[rational] package (approximation → exact fraction)
//	     ↓
//	[factor] package (roots → "2(x - 1/2)(x + 1/2)")
//
// [pipeline] drives these steps for the CLI, the REPL, and the HTTP API.
//
// # Quick Start
//
// Factor a polynomial given by its coefficients, lowest degree first:
//
//	import (
//	    "github.com/matzehuels/polycalc/pkg/factor"
//	    "github.com/matzehuels/polycalc/pkg/poly"
//	)
//
//	f, err := factor.New().Factor(poly.New(2, 3, 1))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(f.Display()) // (x + 1)(x + 2) in some order
//
// Or run a line of input the way the REPL does:
//
//	runner, _ := pipeline.NewRunner(pipeline.Options{}, logger)
//	res, err := runner.Run(ctx, "derive x^3 - x")
//	fmt.Println(res.Output) // 3x^2 - 1
//
// # Main Packages
//
// ## Engine
//
// [poly] - Dense coefficient vectors with Horner evaluation, derivative,
// integral, and a human-readable printer.
//
// [aberth] - Simultaneous root finder. Every iteration updates all
// approximations from one snapshot of the previous ones; a fixed budget of
// iterations is followed by a residual check.
//
// [rational] - Exact fractions backed by math/big and a continued-fraction
// approximator that turns a float into the simplest fraction within a
// tolerance.
//
// [factor] - Combines the solver and the approximator and renders the
// factored form, including complex roots.
//
// ## Input
//
// [parser] - Lexer and recursive-descent parser for lines such as
// "eval x^2 - 1 at 3". Errors carry a byte offset.
//
// ## Orchestration and Infrastructure
//
// [pipeline] - Parse → execute path shared by every entry point.
//
// [cache] - Memory, file, and null backends for solved factorizations.
//
// [config] - TOML/YAML settings with environment overrides.
//
// [errors] - Coded errors shared by the engine, the CLI, and the API.
//
// [observability] - Hook interfaces for logging and metrics backends.
//
// # Testing
//
// Run tests:
//
//	go test ./...            # All tests
//	go test ./pkg/aberth/... # Specific package
//	go test -race ./pkg/...  # Concurrency checks
//
// [poly]: https://pkg.go.dev/github.com/matzehuels/polycalc/pkg/poly
// [aberth]: https://pkg.go.dev/github.com/matzehuels/polycalc/pkg/aberth
// [rational]: https://pkg.go.dev/github.com/matzehuels/polycalc/pkg/rational
// [factor]: https://pkg.go.dev/github.com/matzehuels/polycalc/pkg/factor
// [parser]: https://pkg.go.dev/github.com/matzehuels/polycalc/pkg/parser
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/polycalc/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/polycalc/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/polycalc/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/polycalc/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/polycalc/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/polycalc/pkg/buildinfo
package pkg
