package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gdtoolsuite/gdtools/internal/configloader"
	"github.com/gdtoolsuite/gdtools/internal/logging"
	"github.com/gdtoolsuite/gdtools/pkg/config"
	"github.com/gdtoolsuite/gdtools/pkg/format"
	"github.com/gdtoolsuite/gdtools/pkg/fsutil"
	"github.com/gdtoolsuite/gdtools/pkg/runner"
)

func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("check", false, "exit 1 if any file is not already formatted, without writing")
	cmd.Flags().Bool("diff", false, "print a unified diff of the changes, without writing")
	cmd.Flags().Bool("stdin", false, "read source from stdin and write the formatted result to stdout")
	cmd.Flags().Int("line-length", 0, "maximum line length before wrapping (0 = use config/default)")
	cmd.Flags().Int("use-spaces", 0, "indent with N spaces instead of tabs (0 = use config/default)")
	cmd.Flags().String("config", "", "path to gdtools.toml (default: discovered by walking up from the input paths)")
	cmd.Flags().Bool("backup", false, "create a sidecar backup before writing")
}

func runFormat(cmd *cobra.Command, args []string) error {
	logger := logging.Default()
	ctx := cmd.Context()

	check, _ := cmd.Flags().GetBool("check")
	showDiff, _ := cmd.Flags().GetBool("diff")
	stdin, _ := cmd.Flags().GetBool("stdin")
	lineLength, _ := cmd.Flags().GetInt("line-length")
	useSpaces, _ := cmd.Flags().GetInt("use-spaces")
	configPath, _ := cmd.Flags().GetString("config")
	backup, _ := cmd.Flags().GetBool("backup")

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
	if lineLength > 0 {
		cliCfg.Format.LineLength = lineLength
	}
	if useSpaces > 0 {
		cliCfg.Format.IndentStyle = config.IndentSpaces
		cliCfg.Format.IndentSize = useSpaces
	}
	cliCfg.Check = check
	cliCfg.Diff = showDiff
	cliCfg.Stdin = stdin
	cliCfg.Backup = backup

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
	finalCfg := loadResult.Config

	if stdin {
		return runFormatStdin(ctx, cmd, finalCfg)
	}

	files, err := runner.Discover(ctx, runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: finalCfg.Exclude,
	})
	if err != nil {
		return fmt.Errorf("%w: discover files: %w", errInvalidUsage, err)
	}

	anyChanged := false
	anyErrored := false

	for _, path := range files {
		content, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			anyErrored = true
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			continue
		}

		result, err := format.File(ctx, path, content, finalCfg)
		if err != nil {
			anyErrored = true
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			continue
		}

		if !result.Changed {
			continue
		}
		anyChanged = true

		switch {
		case showDiff:
			fmt.Fprint(cmd.OutOrStdout(), result.Diff.FullString())
		case check:
			fmt.Fprintf(cmd.OutOrStdout(), "%s would be reformatted\n", path)
		default:
			modified, err := fsutil.CheckModifiedQuick(ctx, info)
			if err != nil {
				anyErrored = true
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: check modified: %v\n", path, err)
				continue
			}
			if modified {
				anyErrored = true
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: modified on disk since it was read, skipping write\n", path)
				continue
			}
			if finalCfg.Backup {
				backupCfg := fsutil.DefaultBackupConfig()
				backupCfg.Enabled = true
				if _, err := fsutil.CreateBackup(ctx, path, backupCfg); err != nil {
					anyErrored = true
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: backup: %v\n", path, err)
					continue
				}
			}
			if err := fsutil.WriteAtomic(ctx, path, result.Formatted, info.Mode); err != nil {
				anyErrored = true
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: write: %v\n", path, err)
				continue
			}
			logger.Debug("reformatted", logging.FieldPath, path)
		}
	}

	if anyErrored {
		return errInvalidUsage
	}
	if anyChanged {
		return errIssuesFound
	}
	return nil
}

func runFormatStdin(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return fmt.Errorf("%w: --stdin requires piped input, not an interactive terminal", errInvalidUsage)
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	content, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("%w: read stdin: %w", errInvalidUsage, err)
	}

	result, err := format.File(ctx, "<stdin>", content, cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidUsage, err)
	}

	if _, err := cmd.OutOrStdout().Write(result.Formatted); err != nil {
		return err
	}
	return nil
}
