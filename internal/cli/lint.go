package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gdtoolsuite/gdtools/internal/configloader"
	"github.com/gdtoolsuite/gdtools/internal/logging"
	"github.com/gdtoolsuite/gdtools/pkg/config"
	"github.com/gdtoolsuite/gdtools/pkg/lint"
	_ "github.com/gdtoolsuite/gdtools/pkg/lint/rules" // register built-in rules
	"github.com/gdtoolsuite/gdtools/pkg/reporter"
	"github.com/gdtoolsuite/gdtools/pkg/runner"
)

func addLintFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "text", "output format: text, json")
	cmd.Flags().Bool("warnings-as-errors", false, "elevate warning-severity diagnostics to errors")
	cmd.Flags().String("config", "", "path to gdtools.toml (default: discovered by walking up from the input paths)")
	cmd.Flags().Int("jobs", 0, "number of parallel workers (0 = GOMAXPROCS)")
	cmd.Flags().String("color", "auto", "colorize output: auto, always, never")
}

// newLintCommand builds the explicit "lint" sub-command so both
// "gdlint [paths...]" and "gdlint lint [paths...]" work identically.
func newLintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lint [paths...]",
		Short:         "Lint GDScript source files (default sub-command)",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args)
		},
	}
	addLintFlags(cmd)
	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
	logger := logging.Default()
	ctx := cmd.Context()

	formatStr, _ := cmd.Flags().GetString("format")
	warningsAsErrors, _ := cmd.Flags().GetBool("warnings-as-errors")
	configPath, _ := cmd.Flags().GetString("config")
	jobs, _ := cmd.Flags().GetInt("jobs")
	colorMode, _ := cmd.Flags().GetString("color")

	outputFormat := config.OutputFormat(formatStr)
	if outputFormat != config.FormatText && outputFormat != config.FormatJSON {
		return fmt.Errorf("%w: invalid --format %q", errInvalidUsage, formatStr)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("%w: get working directory: %w", errInvalidUsage, err)
	}
	configDir := workDir
	if len(args) > 0 {
		configDir = args[0]
		if info, err := os.Stat(configDir); err == nil && !info.IsDir() {
			configDir = filepath.Dir(configDir)
		}
	}

	cliCfg := config.NewDefaultConfig()
	cliCfg.OutputFormat = outputFormat
	cliCfg.WarningsAsErrors = warningsAsErrors
	cliCfg.Jobs = jobs

	loadResult, err := configloader.Load(configloader.LoadOptions{
		WorkingDir:   configDir,
		ExplicitPath: configPath,
		CLI:          cliCfg,
	})
	if err != nil {
		return fmt.Errorf("%w: load configuration: %w", errInvalidUsage, err)
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if loadResult.LoadedFrom != "" {
		logger.Debug("loaded configuration", logging.FieldConfigPath, loadResult.LoadedFrom)
	}

	finalCfg := loadResult.Config

	engine := lint.NewEngine(lint.DefaultRegistry)
	lintRunner := runner.New(engine)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: finalCfg.Exclude,
		Jobs:         finalCfg.Jobs,
		Config:       finalCfg,
	}

	logger.Debug("starting lint run",
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("lint run: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      reporter.Format(finalCfg.OutputFormat),
		Color:       colorMode,
		ShowContext: true,
		ShowSummary: finalCfg.OutputFormat == config.FormatText,
	})
	if err != nil {
		return fmt.Errorf("%w: create reporter: %w", errInvalidUsage, err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", file.Path, file.Error)
		}
	}

	if result.HasIssues() {
		return errIssuesFound
	}
	return nil
}
