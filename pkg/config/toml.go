package config

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// rawDoc mirrors the on-disk shape of gdtools.toml. The `rules` table
// mixes a `disable` list with per-rule-id subtables, which doesn't map
// onto a single Go struct field, so it is decoded into `any` here and
// split apart in fromRaw / folded back together in toRaw.
type rawDoc struct {
	Exclude []string       `toml:"exclude"`
	Rules   map[string]any `toml:"rules"`
	Format  FormatOptions  `toml:"format"`
}

// ToTOML serializes the configuration to gdtools.toml's schema.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	doc := rawDoc{
		Exclude: c.Exclude,
		Format:  c.Format,
		Rules:   toRaw(c),
	}
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode toml: %w", err)
	}
	return buf.Bytes(), nil
}

func toRaw(c *Config) map[string]any {
	if len(c.RulesDisable) == 0 && len(c.Rules) == 0 {
		return nil
	}
	out := map[string]any{}
	if len(c.RulesDisable) > 0 {
		out["disable"] = append([]string(nil), c.RulesDisable...)
	}
	for id, opts := range c.Rules {
		table := map[string]any{}
		if opts.Max != nil {
			table["max"] = *opts.Max
		}
		if opts.Severity != nil {
			table["severity"] = *opts.Severity
		}
		if opts.Pattern != nil {
			table["pattern"] = *opts.Pattern
		}
		if len(table) > 0 {
			out[id] = table
		}
	}
	return out
}

// FromTOML parses a gdtools.toml document into a Config. Unrecognized
// keys are reported via unknownKeys rather than failing the parse; only
// malformed TOML or ill-typed recognized values are errors (§7: "Config
// errors: invalid TOML or invalid value types abort startup with exit
// 2; unknown keys are warnings.").
func FromTOML(data []byte) (cfg *Config, unknownKeys []string, err error) {
	var top map[string]any
	if unmarshalErr := toml.Unmarshal(data, &top); unmarshalErr != nil {
		return nil, nil, fmt.Errorf("parse toml: %w", unmarshalErr)
	}
	for key := range top {
		switch key {
		case "exclude", "rules", "format":
		default:
			unknownKeys = append(unknownKeys, key)
		}
	}
	if formatTable, ok := top["format"].(map[string]any); ok {
		for subKey := range formatTable {
			switch subKey {
			case "line_length", "indent_style", "indent_size":
			default:
				unknownKeys = append(unknownKeys, fmt.Sprintf("format.%s", subKey))
			}
		}
	}

	var doc rawDoc
	if unmarshalErr := toml.Unmarshal(data, &doc); unmarshalErr != nil {
		return nil, nil, fmt.Errorf("parse toml: %w", unmarshalErr)
	}

	cfg = &Config{
		Exclude: doc.Exclude,
		Format:  doc.Format,
		Rules:   map[string]RuleOptions{},
	}

	for key, val := range doc.Rules {
		if key == "disable" {
			ids, err := toStringSlice(val)
			if err != nil {
				return nil, nil, fmt.Errorf("rules.disable: %w", err)
			}
			cfg.RulesDisable = ids
			continue
		}

		table, ok := val.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("rules.%s: expected a table", key)
		}
		opts := RuleOptions{}
		for subKey, subVal := range table {
			switch subKey {
			case "max":
				n, err := toInt(subVal)
				if err != nil {
					return nil, nil, fmt.Errorf("rules.%s.max: %w", key, err)
				}
				opts.Max = &n
			case "severity":
				s, ok := subVal.(string)
				if !ok {
					return nil, nil, fmt.Errorf("rules.%s.severity: expected a string", key)
				}
				if s != string(SeverityWarning) && s != string(SeverityError) {
					return nil, nil, fmt.Errorf("rules.%s.severity: invalid value %q", key, s)
				}
				opts.Severity = &s
			case "pattern":
				s, ok := subVal.(string)
				if !ok {
					return nil, nil, fmt.Errorf("rules.%s.pattern: expected a string", key)
				}
				opts.Pattern = &s
			default:
				unknownKeys = append(unknownKeys, fmt.Sprintf("rules.%s.%s", key, subKey))
			}
		}
		cfg.Rules[key] = opts
	}

	if doc.Format.LineLength == 0 {
		cfg.Format.LineLength = 0 // left for the merge step to fall back to defaults
	}
	if doc.Format.IndentStyle != "" && doc.Format.IndentStyle != IndentTabs && doc.Format.IndentStyle != IndentSpaces {
		return nil, nil, fmt.Errorf("format.indent_style: invalid value %q", doc.Format.IndentStyle)
	}

	return cfg, unknownKeys, nil
}

func toStringSlice(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list")
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected a list of strings")
		}
		out = append(out, s)
	}
	return out, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected an integer")
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Exclude = append([]string(nil), c.Exclude...)
	clone.RulesDisable = append([]string(nil), c.RulesDisable...)
	clone.Rules = make(map[string]RuleOptions, len(c.Rules))
	for id, opts := range c.Rules {
		clone.Rules[id] = opts.clone()
	}
	return &clone
}

func (o RuleOptions) clone() RuleOptions {
	out := RuleOptions{}
	if o.Max != nil {
		v := *o.Max
		out.Max = &v
	}
	if o.Severity != nil {
		v := *o.Severity
		out.Severity = &v
	}
	if o.Pattern != nil {
		v := *o.Pattern
		out.Pattern = &v
	}
	return out
}
