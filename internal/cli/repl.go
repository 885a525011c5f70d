package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polycalc/pkg/buildinfo"
	"github.com/matzehuels/polycalc/pkg/pipeline"
)

const prompt = ">"

// helpText lists what the REPL accepts.
var helpText = []string{
	"x^2 + 3x + 2              factor (the default)",
	"derive x^3 - x            derivative (also: d, derivative, diff)",
	"integrate 3x^2            integral (also: int, integral)",
	"eval x^2 - 1 at 3         value at a point (or: x^2 - 1 at 3)",
	"help                      show this message",
	"quit                      leave (also: exit, ctrl+d)",
}

// replCommand creates the repl command.
func (c *CLI) replCommand() *cobra.Command {
	var tui bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive calculator",
		Long: `Read one request per line and print each answer.

Use --tui for a full-screen interface with history (up/down) and scrollback.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui {
				return c.runTUI(cmd.Context())
			}
			return c.runREPL(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&tui, "tui", false, "use the full-screen terminal UI")
	return cmd
}

// runREPL runs the line-based REPL on c.In and c.Out.
func (c *CLI) runREPL(ctx context.Context) error {
	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	return c.repl(ctx, runner)
}

func (c *CLI) repl(ctx context.Context, runner *pipeline.Runner) error {
	lines, scanErr := readLines(ctx, c.In)

	printInfo(c.Out, "%s %s · type %s for examples, %s to leave", appName, buildinfo.Version, StyleTitle.Render("help"), StyleTitle.Render("quit"))
	for {
		fmt.Fprint(c.Out, stylePrompt.Render(prompt)+" ")

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.Out)
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(c.Out)
			select {
			case err := <-scanErr:
				return err
			default:
				return nil
			}
		}

		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "help", "?":
			for _, h := range helpText {
				printDetail(c.Out, "%s", h)
			}
			continue
		}

		res, err := runner.Run(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.reportError(err)
			continue
		}
		printResult(c.Out, res.Output)
	}
}

// readLines scans r on its own goroutine so the REPL can also watch ctx.
// The error channel receives the scanner error, if any, before lines closes.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}
