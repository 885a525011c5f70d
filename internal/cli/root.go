package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polycalc/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root command loads the configuration before any subcommand runs and
// attaches the CLI logger to the command context, where loggerFromContext
// finds it.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName + " [expression]",
		Short: "Polycalc factors, differentiates, integrates and evaluates polynomials",
		Long: `Polycalc is an interactive polynomial calculator. It finds every root of a
polynomial with the Aberth method, snaps the roots to exact fractions, and prints
the factored form. It also differentiates, integrates and evaluates polynomials.

Run without arguments to start the REPL, or pass a line of input:

  polycalc "x^2 + 3x + 2"          # (x + 1)(x + 2)
  polycalc derive "x^3 - x"        # 3x^2 - 1
  polycalc eval "x^2 - 1" --at 3   # 8`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			c.installHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.runREPL(cmd.Context())
			}
			return c.runLine(cmd.Context(), strings.Join(args, " "), false)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/polycalc/config.toml)")
	flags.Int64Var(&c.seed, "seed", 0, "random seed for reproducible root finding (0 = time-based)")
	flags.IntVar(&c.iterations, "iterations", 0, "Aberth iteration budget (0 = config default)")

	// Register all subcommands
	root.AddCommand(c.factorCommand())
	root.AddCommand(c.deriveCommand())
	root.AddCommand(c.integrateCommand())
	root.AddCommand(c.evalCommand())
	root.AddCommand(c.replCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
