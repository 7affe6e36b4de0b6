// Package config defines the effective configuration shared by gdlint
// and gdformat: built-in defaults, a project gdtools.toml, and CLI flags
// merged last-wins per key into a single read-only value.
package config

// Severity is a diagnostic's importance level.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// OutputFormat selects how diagnostics are rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IndentStyle selects the formatter's indentation character.
type IndentStyle string

const (
	IndentTabs   IndentStyle = "tabs"
	IndentSpaces IndentStyle = "spaces"
)

// RuleOptions holds the per-rule table recognized under `rules.<id>` in
// gdtools.toml. Pointer fields distinguish "unset" from "set to zero
// value" so layered merges only override what was actually specified.
type RuleOptions struct {
	Max      *int    `toml:"max"`
	Severity *string `toml:"severity"`
	Pattern  *string `toml:"pattern"`
}

// FormatOptions holds the `format.*` table.
type FormatOptions struct {
	LineLength  int         `toml:"line_length"`
	IndentStyle IndentStyle `toml:"indent_style"`
	IndentSize  int         `toml:"indent_size"`
}

// Config is the EffectiveConfig: the merge of built-in defaults, the
// project's gdtools.toml, and CLI flags.
type Config struct {
	// Exclude lists glob patterns applied to paths during discovery.
	Exclude []string `toml:"exclude"`

	// RulesDisable lists rule ids fully disabled (`rules.disable`).
	RulesDisable []string `toml:"-"`

	// Rules holds per-rule tables keyed by rule id (`rules.<id>`).
	Rules map[string]RuleOptions `toml:"-"`

	Format FormatOptions `toml:"format"`

	// CLI-only fields, never persisted to gdtools.toml.

	// WarningsAsErrors elevates every warning severity to error for this
	// invocation (`gdlint --warnings-as-errors`).
	WarningsAsErrors bool `toml:"-"`

	// OutputFormat selects text or json diagnostic rendering.
	OutputFormat OutputFormat `toml:"-"`

	// Jobs is the worker-pool size; 0 means GOMAXPROCS.
	Jobs int `toml:"-"`

	// Check, Diff, Stdin, and Backup are gdformat-only behaviors.
	Check  bool `toml:"-"`
	Diff   bool `toml:"-"`
	Stdin  bool `toml:"-"`
	Backup bool `toml:"-"`
}

// NewDefaultConfig returns layer 1 of §4.G: every rule enabled at its
// default severity, 100-column lines, tab indentation of width 4.
func NewDefaultConfig() *Config {
	return &Config{
		Exclude:      nil,
		RulesDisable: nil,
		Rules:        map[string]RuleOptions{},
		Format: FormatOptions{
			LineLength:  100,
			IndentStyle: IndentTabs,
			IndentSize:  4,
		},
		OutputFormat: FormatText,
	}
}

// IndentString returns the literal bytes one indentation level emits.
func (c *Config) IndentString() string {
	if c.Format.IndentStyle == IndentSpaces {
		size := c.Format.IndentSize
		if size <= 0 {
			size = 4
		}
		out := make([]byte, size)
		for i := range out {
			out[i] = ' '
		}
		return string(out)
	}
	return "\t"
}
