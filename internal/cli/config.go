package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polycalc/pkg/config"
)

// configCommand creates the config command and its subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration after applying the config file, POLYCALC_* environment
variables and flags. The output is a valid config file:

  polycalc config > ~/.config/polycalc/config.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.settings().Encode(c.Out)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(c.Out, config.DefaultPath())
			return err
		},
	})

	return cmd
}
