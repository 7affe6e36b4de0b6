package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gdtoolsuite/gdtools/pkg/config"
	_ "github.com/gdtoolsuite/gdtools/pkg/lint/rules" // register built-in rules for the catalog comment
)

// newDumpConfigCommand implements "gdlint dump-config" (§6): prints the
// built-in default configuration as TOML, not the effective/merged one —
// a template a user can copy into gdtools.toml and edit, with every known
// rule listed as a commented-out override.
func newDumpConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "dump-config",
		Short:         "Print the default configuration as TOML",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.DumpConfig()
			if err != nil {
				return fmt.Errorf("%w: render default config: %w", errInvalidUsage, err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
