package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polycalc/pkg/errors"
	"github.com/matzehuels/polycalc/pkg/parser"
	"github.com/matzehuels/polycalc/pkg/pipeline"
)

// calcOptions holds flags shared by the one-shot commands.
type calcOptions struct {
	detail bool
	at     string
}

// factorCommand creates the factor command.
func (c *CLI) factorCommand() *cobra.Command {
	var opts calcOptions
	cmd := &cobra.Command{
		Use:   "factor <polynomial>",
		Short: "Print the factored form of a polynomial",
		Long: `Find every root with the Aberth method, snap each root to an exact fraction,
and print the polynomial as a product of linear factors.

Complex roots are printed as complex factors, so x^2 + 1 factors as (x - i)(x + i).`,
		Example: `  polycalc factor "x^2 + 3x + 2"
  polycalc factor "2x^3 - 3x^2 - 11x + 6" --detail`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCommand(cmd.Context(), parser.OpFactor, args, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.detail, "detail", false, "also print the approximations and the residual")
	return cmd
}

// deriveCommand creates the derive command.
func (c *CLI) deriveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "derive <polynomial>",
		Aliases: []string{"d", "derivative"},
		Short:   "Print the derivative of a polynomial",
		Example: `  polycalc derive "x^3 - 2x + 7"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCommand(cmd.Context(), parser.OpDerive, args, calcOptions{})
		},
	}
}

// integrateCommand creates the integrate command.
func (c *CLI) integrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "integrate <polynomial>",
		Aliases: []string{"int", "integral"},
		Short:   "Print the indefinite integral of a polynomial",
		Example: `  polycalc integrate "3x^2 + 2"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCommand(cmd.Context(), parser.OpIntegrate, args, calcOptions{})
		},
	}
}

// evalCommand creates the eval command.
func (c *CLI) evalCommand() *cobra.Command {
	var opts calcOptions
	cmd := &cobra.Command{
		Use:     "eval <polynomial> --at <value>",
		Aliases: []string{"evaluate"},
		Short:   "Evaluate a polynomial at a point",
		Example: `  polycalc eval "x^2 - 1" --at 3
  polycalc eval "x^3" --at -1/2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCommand(cmd.Context(), parser.OpEvaluate, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.at, "at", "", "point to evaluate at (integer, decimal or fraction)")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

// runCommand turns a one-shot command back into a line of input so the
// commands and the REPL share one parser.
func (c *CLI) runCommand(ctx context.Context, op parser.Op, args []string, opts calcOptions) error {
	line := string(op) + " " + strings.Join(args, " ")
	if op == parser.OpEvaluate {
		line += " at " + opts.at
	}
	return c.runLine(ctx, line, opts.detail)
}

// runLine executes one line and prints its result.
func (c *CLI) runLine(ctx context.Context, line string, detail bool) error {
	runner, err := c.newRunner()
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.Run(ctx, line)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("%s degree %d", res.Op, res.Polynomial.Degree()))

	printResult(c.Out, res.Output)
	if detail {
		c.printDetails(res)
	}
	return nil
}

// printDetails prints the numerical side of a factorization.
func (c *CLI) printDetails(res *pipeline.Result) {
	f := res.Factorization
	if f == nil {
		return
	}
	printKeyValue(c.Out, "leading", f.Leading.String())
	printKeyValue(c.Out, "residual", fmt.Sprintf("%.3g", f.MaxResidual))
	if res.Cached {
		printKeyValue(c.Out, "source", "cache")
	}
	for i, z := range f.Approximations {
		printRoot(c.Out, z, f.Roots[i].String())
	}
}

// reportError prints err for the REPL and keeps going.
func (c *CLI) reportError(err error) {
	printError(c.Out, string(errors.GetCode(err)), errors.UserMessage(err))
}
