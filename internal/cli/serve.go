package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/polycalc/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Long: `Run the HTTP API until interrupted.

  POST /v1/evaluate  {"expression": "x^2 + 3x + 2"}
  POST /v1/factor    {"coefficients": [2, 3, 1]}
  GET  /health
  GET  /version`,
		Example: `  polycalc serve --addr :9090
  curl -s localhost:9090/v1/evaluate -H 'Content-Type: application/json' \
    -d '{"expression": "derive x^3"}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.settings().Server
			if addr != "" {
				cfg.Addr = addr
			}

			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			if err := server.New(runner, cfg, c.Logger).Run(cmd.Context()); err != nil {
				return err
			}
			printSuccess(c.Out, "server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+`":8080"`+")")
	return cmd
}
