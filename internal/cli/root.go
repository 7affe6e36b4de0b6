// Package cli provides the Cobra command trees for the gdlint and
// gdformat binaries.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// BuildInfo holds build-time version information shared by both binaries.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewGdlintCommand creates the gdlint root command. Running it with no
// sub-command named performs "lint" against the given paths (§6: "gdlint
// [lint] [paths…] — default").
func NewGdlintCommand(info BuildInfo) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gdlint [paths...]",
		Short: "Lint GDScript source files",
		Long: `gdlint checks GDScript 4.x source files against a fixed set of
style and correctness rules (whitespace, naming, line length, duplicate
keys, unused arguments, and more).

Examples:
  gdlint                          # lint the current directory
  gdlint scripts/                 # lint a directory
  gdlint --format json player.gd  # machine-readable output
  gdlint rules                    # list all available rules
  gdlint dump-config              # print the default configuration`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args)
		},
	}

	addLintFlags(rootCmd)

	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newDumpConfigCommand())
	rootCmd.AddCommand(newVersionCommand("gdlint", info))

	NewHelpFormatter("auto", os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}

// NewGdformatCommand creates the gdformat root command.
func NewGdformatCommand(info BuildInfo) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gdformat [paths...]",
		Short: "Format GDScript source files",
		Long: `gdformat rewrites GDScript 4.x source files into a canonical layout:
consistent indentation, operator spacing, comma-list wrapping, and blank
line rules between declarations.

Examples:
  gdformat scripts/                 # format in place
  gdformat --check scripts/         # exit 1 if changes are needed
  gdformat --diff player.gd         # show a unified diff, no writes
  cat player.gd | gdformat --stdin  # format from stdin to stdout`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args)
		},
	}

	addFormatFlags(rootCmd)
	rootCmd.AddCommand(newVersionCommand("gdformat", info))

	NewHelpFormatter("auto", os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
