package config

import (
	"bytes"
	"fmt"
	"sort"
)

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID              string
	Name            string
	Description     string
	DefaultSeverity Severity
	Tags            []string
}

// RuleInfoProvider is a function that returns rule information. This
// allows decoupling from the lint package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the lint package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// DumpConfig renders the default configuration as gdtools.toml, with a
// commented catalog of every known rule appended for reference.
func DumpConfig() ([]byte, error) {
	body, err := NewDefaultConfig().ToTOML()
	if err != nil {
		return nil, fmt.Errorf("dump config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# gdtools.toml - default configuration\n")
	buf.WriteString("#\n")
	buf.WriteString("# Resolution order: built-in defaults, then this file, then CLI flags.\n")
	buf.WriteString("# Last value wins per key.\n\n")
	buf.Write(body)

	rules := getRuleInfos()
	if len(rules) == 0 {
		return buf.Bytes(), nil
	}

	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })

	buf.WriteString("\n# Known rules (uncomment a rules.<id> table to override):\n")
	for _, r := range rules {
		buf.WriteString(fmt.Sprintf("# %s: %s (default severity: %s)\n", r.ID, r.Description, r.DefaultSeverity))
		buf.WriteString(fmt.Sprintf("# [rules.%s]\n", r.ID))
	}

	return buf.Bytes(), nil
}

// getRuleInfos returns information about all registered rules.
func getRuleInfos() []RuleInfo {
	if DefaultRuleInfoProvider != nil {
		return DefaultRuleInfoProvider()
	}
	return nil
}
