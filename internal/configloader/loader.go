package configloader

import (
	"fmt"
	"os"

	"github.com/gdtoolsuite/gdtools/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir anchors the upward search for gdtools.toml. Defaults to
	// the current working directory when empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config). When
	// set, the upward search is skipped.
	ExplicitPath string

	// CLI holds configuration derived from command-line flags; applied
	// last, overriding anything the project file set for the same key.
	CLI *config.Config
}

// LoadResult is the resolved configuration plus metadata about how it was
// assembled.
type LoadResult struct {
	Config     *config.Config
	LoadedFrom string
	Warnings   []string
}

// Load resolves the EffectiveConfig per §4.G: defaults, then the project's
// gdtools.toml (if any), then CLI flags.
func Load(opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{Config: config.NewDefaultConfig()}

	path := opts.ExplicitPath
	if path == "" {
		found, err := FindProjectConfig(opts.WorkingDir)
		if err != nil {
			return nil, fmt.Errorf("find project config: %w", err)
		}
		path = found
	}

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}

		fileCfg, unknownKeys, err := config.FromTOML(content)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		for _, key := range unknownKeys {
			result.Warnings = append(result.Warnings, fmt.Sprintf("unknown configuration key %q", key))
		}

		mergeFile(result.Config, fileCfg)
		result.LoadedFrom = path
	}

	if opts.CLI != nil {
		mergeCLI(result.Config, opts.CLI)
	}

	return result, nil
}

// mergeFile overlays the project file's recognized keys onto cfg. Only
// keys the file actually set are applied; everything else keeps its
// built-in default.
func mergeFile(cfg *config.Config, file *config.Config) {
	if len(file.Exclude) > 0 {
		cfg.Exclude = file.Exclude
	}
	if len(file.RulesDisable) > 0 {
		cfg.RulesDisable = file.RulesDisable
	}
	for id, opts := range file.Rules {
		cfg.Rules[id] = opts
	}
	if file.Format.LineLength > 0 {
		cfg.Format.LineLength = file.Format.LineLength
	}
	if file.Format.IndentStyle != "" {
		cfg.Format.IndentStyle = file.Format.IndentStyle
	}
	if file.Format.IndentSize > 0 {
		cfg.Format.IndentSize = file.Format.IndentSize
	}
}

// mergeCLI overlays CLI-derived fields, which always win (§4.G layer 3).
func mergeCLI(cfg *config.Config, cli *config.Config) {
	mergeFile(cfg, cli)

	cfg.WarningsAsErrors = cfg.WarningsAsErrors || cli.WarningsAsErrors
	if cli.OutputFormat != "" {
		cfg.OutputFormat = cli.OutputFormat
	}
	if cli.Jobs > 0 {
		cfg.Jobs = cli.Jobs
	}
	cfg.Check = cfg.Check || cli.Check
	cfg.Diff = cfg.Diff || cli.Diff
	cfg.Stdin = cfg.Stdin || cli.Stdin
	cfg.Backup = cfg.Backup || cli.Backup
}
