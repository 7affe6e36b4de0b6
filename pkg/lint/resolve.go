package lint

import "github.com/gdtoolsuite/gdtools/pkg/config"

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// Options is the rule-specific configuration (may be nil).
	Options *config.RuleOptions
}

// ResolveRules determines which rules to run based on registry and
// config. Returns only enabled rules with their resolved configuration.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the configuration for a single rule: default
// severity/enabled, then rules.disable, then the rules.<id> table.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  true,
		Severity: rule.DefaultSeverity(),
	}

	if cfg == nil {
		return rr
	}

	for _, id := range cfg.RulesDisable {
		if id == rule.ID() || id == "*" {
			rr.Enabled = false
			break
		}
	}

	if opts, ok := cfg.Rules[rule.ID()]; ok {
		rr.Options = &opts
		if opts.Severity != nil {
			rr.Severity = config.Severity(*opts.Severity)
		}
	}

	rr.Severity = ElevateSeverity(rr.Severity, cfg)

	return rr
}

// ElevateSeverity bumps a warning to an error when cfg.WarningsAsErrors is
// set. Used both for rule-resolved severities and for the front-end
// diagnostics (syntax-error, mixed-indentation, unknown-rule) that bypass
// rule resolution entirely.
func ElevateSeverity(severity config.Severity, cfg *config.Config) config.Severity {
	if cfg != nil && cfg.WarningsAsErrors && severity == config.SeverityWarning {
		return config.SeverityError
	}
	return severity
}
