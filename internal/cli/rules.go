package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gdtoolsuite/gdtools/pkg/lint"
	_ "github.com/gdtoolsuite/gdtools/pkg/lint/rules" // register built-in rules
)

// newRulesCommand implements "gdlint rules" (§6): one line per rule,
// tab-separated id, default severity, and a one-line description.
func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "rules",
		Short:         "List all available lint rules",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd)
		},
	}
}

func runRules(cmd *cobra.Command) error {
	rules := lint.DefaultRegistry.Rules()
	out := cmd.OutOrStdout()
	for _, rule := range rules {
		if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", rule.ID(), rule.DefaultSeverity(), rule.Description()); err != nil {
			return err
		}
	}
	return nil
}
